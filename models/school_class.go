package models

// SchoolClass is a named label offered as a suggestion for Student.ClassName.
// The relationship is advisory only; nothing enforces it.
type SchoolClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
