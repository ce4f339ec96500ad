package models

// ProjectConfig is the single "currently active" project pointer that drives
// the capture workflow. Exactly one instance is live at a time; selecting a
// project overwrites it (last write wins).
type ProjectConfig struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	SessionDate string `json:"sessionDate"` // YYYY-MM-DD
}

// IsValid reports whether the pointer carries all required fields
func (c ProjectConfig) IsValid() bool {
	return c.ProjectID != "" && c.ProjectName != "" && c.SessionDate != ""
}
