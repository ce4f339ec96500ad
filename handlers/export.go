package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/repository"
	"github.com/photoclass/photoclassbackend/roster"
)

type ExportHandler struct {
	Projects *repository.ProjectRepository
	Students *repository.StudentRepository
	Photos   *repository.PhotoRepository
	Sessions *repository.SessionRepository
}

// ExportCSV streams the project's photo/roster CSV as a download. The session
// date comes from the active project pointer when it targets this project,
// otherwise from ?sessionDate, otherwise the export carries an empty date.
func (eh *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	project, err := eh.Projects.Get(projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		} else {
			log.Printf("Error loading project %s for export: %v", projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load project"})
		}
		return
	}

	cfg := models.ProjectConfig{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		SessionDate: r.URL.Query().Get("sessionDate"),
	}
	if stored, found, err := eh.Sessions.GetConfig(); err == nil && found && stored.ProjectID == project.ID {
		cfg.SessionDate = stored.SessionDate
	}

	students, err := eh.Students.ListByProject(projectID)
	if err != nil {
		log.Printf("Error loading roster for export of %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load roster"})
		return
	}
	photos, err := eh.Photos.ListByProject(projectID)
	if err != nil {
		log.Printf("Error loading photos for export of %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load photos"})
		return
	}

	doc, err := roster.BuildExport(cfg, students, photos)
	if err != nil {
		if errors.Is(err, roster.ErrNothingToExport) {
			WriteAPIError(w, http.StatusConflict, "nothing_to_export", "The project has no photos and no students to export.")
		} else {
			log.Printf("Error building export for %s: %v", projectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to build export"})
		}
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", roster.ExportFileName(cfg)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(doc)); err != nil {
		log.Printf("Error writing export response for %s: %v", projectID, err)
	}
}
