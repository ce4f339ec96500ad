package models

// Project is one photography session grouping a roster and its photos.
// Only the base fields are persisted; counts and progress are derived at
// read time from the roster and photo collections.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedDate string `json:"createdDate"`
	Color       string `json:"color"`
	IconColor   string `json:"iconColor"`
}

// ProjectSummary is a Project enriched with derived counts for listing views
type ProjectSummary struct {
	Project
	Students int `json:"students"`
	Photos   int `json:"photos"`
	Progress int `json:"progress"`
}
