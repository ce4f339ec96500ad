package models

// Student is a roster entry scoped to exactly one project. The ID is stable
// and unique within the project's roster; ClassName is free text and carries
// no referential link to SchoolClass.
type Student struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ClassName string `json:"className"`
}
