package models

import (
	"fmt"
	"strings"
)

// CapturedPhoto is one still image tied to a student within a project.
// The ID is composed from student, project and capture timestamp so rapid
// repeated captures never collide. PhotoDataURL is a self-contained base64
// JPEG data URL.
type CapturedPhoto struct {
	ID           string `json:"id"`
	StudentID    string `json:"studentId"`
	ProjectID    string `json:"projectId"`
	PhotoDataURL string `json:"photoDataUrl"`
	FileName     string `json:"fileName"`
	Timestamp    int64  `json:"timestamp"`
}

// PhotoID builds the composite photo identifier
func PhotoID(studentID, projectID string, timestampMillis int64) string {
	return fmt.Sprintf("%s_%s_%d", studentID, projectID, timestampMillis)
}

// PhotoFileName builds the generated file name for a capture:
// <class with spaces as dashes>_<last>_<first>_<sequence>.jpg
func PhotoFileName(s Student, sequence int) string {
	class := strings.Join(strings.Fields(s.ClassName), "-")
	return fmt.Sprintf("%s_%s_%s_%d.jpg", class, s.LastName, s.FirstName, sequence)
}
