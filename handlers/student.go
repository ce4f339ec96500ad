package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/photoclass/photoclassbackend/realtime"
	"github.com/photoclass/photoclassbackend/repository"
	"github.com/photoclass/photoclassbackend/roster"
)

// csv uploads are tiny rosters; cap the parse buffer well above any
// realistic class list
const maxImportSize = 4 << 20

type StudentHandler struct {
	Students *repository.StudentRepository
	Hub      *realtime.Hub
}

func (sh *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	students, err := sh.Students.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing students for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve students"})
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (sh *StudentHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		ClassName string `json:"className" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.ClassName = strings.TrimSpace(req.ClassName)
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "firstName, lastName and className are required"})
		return
	}

	student, err := sh.Students.Add(projectID, req.FirstName, req.LastName, req.ClassName)
	if err != nil {
		log.Printf("Error adding student to project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to add student"})
		return
	}
	writeJSON(w, http.StatusCreated, student)
}

func (sh *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	studentID := chi.URLParam(r, "student_id")

	var req struct {
		FirstName string `json:"firstName" validate:"required"`
		LastName  string `json:"lastName" validate:"required"`
		ClassName string `json:"className" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.ClassName = strings.TrimSpace(req.ClassName)
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "firstName, lastName and className are required"})
		return
	}

	student, err := sh.Students.Update(projectID, studentID, req.FirstName, req.LastName, req.ClassName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Student not found"})
		} else {
			log.Printf("Error updating student %s in project %s: %v", studentID, projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update student"})
		}
		return
	}
	writeJSON(w, http.StatusOK, student)
}

// ImportCSV parses an uploaded roster file into student records. The merge
// mode comes from the "mode" form value: "replace" swaps the whole roster,
// "append" unions by ID. Header validation failures abort with no state
// change.
func (sh *StudentHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid multipart form: " + err.Error()})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required file field: file"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		log.Printf("Error reading import upload for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read uploaded file"})
		return
	}

	mode := roster.MergePolicy(r.FormValue("mode"))
	if mode == "" {
		mode = roster.MergeReplace
	}
	if mode != roster.MergeReplace && mode != roster.MergeAppendUnique {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "mode must be \"replace\" or \"append\""})
		return
	}

	students, err := roster.ParseRoster(string(payload), projectID)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrMalformedInput):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "CSV must contain a header and at least one data row"})
		case errors.Is(err, roster.ErrMissingColumns):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "CSV must contain the columns: Prénom, Nom, Classe"})
		default:
			log.Printf("Error parsing roster CSV for project %s: %v", projectID, err)
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Failed to parse CSV"})
		}
		return
	}

	added := len(students)
	switch mode {
	case roster.MergeReplace:
		err = sh.Students.ReplaceAll(projectID, students)
	case roster.MergeAppendUnique:
		added, err = sh.Students.AppendUnique(projectID, students)
	}
	if err != nil {
		log.Printf("Error storing imported roster for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store imported students"})
		return
	}

	if sh.Hub != nil {
		sh.Hub.Broadcast(realtime.Event{Type: realtime.EventRosterImported, ProjectID: projectID})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"imported": len(students),
		"added":    added,
		"mode":     string(mode),
	})
}
