package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/photoclass/photoclassbackend/repository"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Error encoding JSON response: %v", err)
		}
	}
}

type ProjectHandler struct {
	Projects *repository.ProjectRepository
}

// ListProjects returns every project enriched with roster size, photo count
// and completion percentage
func (ph *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := ph.Projects.Summaries()
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve projects"})
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (ph *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	project, err := ph.Projects.Get(projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		} else {
			log.Printf("Error getting project %s: %v", projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve project"})
		}
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (ph *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: name"})
		return
	}

	project, err := ph.Projects.Create(req.Name)
	if err != nil {
		log.Printf("Error creating project '%s': %v", req.Name, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create project"})
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (ph *ProjectHandler) RenameProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: name"})
		return
	}

	project, err := ph.Projects.Rename(projectID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		} else {
			log.Printf("Error renaming project %s: %v", projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to rename project"})
		}
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DeleteProject removes a project and cascades to its photos and roster
func (ph *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	if err := ph.Projects.Delete(projectID); err != nil {
		log.Printf("Error deleting project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete project"})
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
