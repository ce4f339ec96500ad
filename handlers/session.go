package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/realtime"
	"github.com/photoclass/photoclassbackend/repository"
	"github.com/photoclass/photoclassbackend/session"
	"github.com/photoclass/photoclassbackend/workers"
)

// SessionHandler owns the single active capture workflow. Activating a
// project overwrites the previous session (last write wins), mirroring the
// single active-project pointer in the store.
type SessionHandler struct {
	Sessions *repository.SessionRepository
	Projects *repository.ProjectRepository
	Students *repository.StudentRepository
	Photos   *repository.PhotoRepository
	Camera   session.Camera
	ThumbGen *workers.ThumbnailGenerator
	Hub      *realtime.Hub

	mu      sync.Mutex
	current *session.Session
}

// Restore rebuilds the workflow from the persisted active-project pointer,
// called once at startup. A missing or malformed pointer just leaves no
// active session.
func (sh *SessionHandler) Restore() {
	cfg, found, err := sh.Sessions.GetConfig()
	if err != nil {
		log.Printf("session: failed to read stored project pointer: %v", err)
		return
	}
	if !found {
		return
	}
	students, err := sh.Students.ListByProject(cfg.ProjectID)
	if err != nil {
		log.Printf("session: failed to load roster for %s: %v", cfg.ProjectID, err)
		return
	}
	sh.mu.Lock()
	sh.current = session.New(cfg, students, sh.Camera, sh.Photos)
	sh.mu.Unlock()
	log.Printf("session: restored active project %s (%d students)", cfg.ProjectID, len(students))
}

// Activate selects a project as the active capture session
func (sh *SessionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectID   string `json:"projectId" validate:"required"`
		SessionDate string `json:"sessionDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: projectId"})
		return
	}

	project, err := sh.Projects.Get(req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		} else {
			log.Printf("Error loading project %s for activation: %v", req.ProjectID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load project"})
		}
		return
	}

	sessionDate := req.SessionDate
	if sessionDate == "" {
		sessionDate = time.Now().Format("2006-01-02")
	}
	cfg := models.ProjectConfig{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		SessionDate: sessionDate,
	}

	if err := sh.Sessions.SetConfig(cfg); err != nil {
		log.Printf("Error storing project pointer for %s: %v", project.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store active project"})
		return
	}

	students, err := sh.Students.ListByProject(project.ID)
	if err != nil {
		log.Printf("Error loading roster for %s: %v", project.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load roster"})
		return
	}

	sh.mu.Lock()
	sh.current = session.New(cfg, students, sh.Camera, sh.Photos)
	sh.mu.Unlock()

	writeJSON(w, http.StatusOK, sh.snapshotLocked())
}

// Get reports the active session state
func (sh *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}
	writeJSON(w, http.StatusOK, sh.snapshot())
}

// ReloadRoster re-reads the active project's roster from the store, used
// after an import or a manual roster edit
func (sh *SessionHandler) ReloadRoster(w http.ResponseWriter, r *http.Request) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}

	students, err := sh.Students.ListByProject(sh.current.Config().ProjectID)
	if err != nil {
		log.Printf("Error reloading roster: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to reload roster"})
		return
	}
	sh.current.SetRoster(students)
	writeJSON(w, http.StatusOK, sh.snapshot())
}

// Capture grabs a frame for the current student and persists it
func (sh *SessionHandler) Capture(w http.ResponseWriter, r *http.Request) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}

	photo, rosterComplete, err := sh.current.CaptureCurrent()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoCurrentStudent):
			WriteAPIError(w, http.StatusConflict, "no_current_student", "No student available; import or add students first.")
		case errors.Is(err, session.ErrCaptureFailed):
			WriteAPIError(w, http.StatusServiceUnavailable, "capture_failed", "Could not capture a photo from the webcam.")
		default:
			log.Printf("Error capturing photo: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save the captured photo"})
		}
		return
	}

	if sh.ThumbGen != nil {
		sh.ThumbGen.QueueJob(workers.ThumbnailJob{PhotoID: photo.ID, PhotoDataURL: photo.PhotoDataURL})
	}
	if sh.Hub != nil {
		sh.Hub.Broadcast(realtime.Event{
			Type:      realtime.EventPhotoCaptured,
			ProjectID: photo.ProjectID,
			StudentID: photo.StudentID,
			PhotoID:   photo.ID,
		})
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"photo":          photo,
		"rosterComplete": rosterComplete,
		"index":          sh.current.Index(),
	})
}

// Advance moves the current-student cursor by ±1
func (sh *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction int `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.Direction != 1 && req.Direction != -1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "direction must be 1 or -1"})
		return
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}

	student, err := sh.current.Advance(req.Direction)
	atBoundary := errors.Is(err, session.ErrAtBoundary)
	if err != nil && !atBoundary {
		WriteAPIError(w, http.StatusConflict, "no_current_student", "No student available; import or add students first.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"student":    student,
		"index":      sh.current.Index(),
		"atBoundary": atBoundary,
	})
}

// CurrentPhotos lists the current student's captures for the preview strip
func (sh *SessionHandler) CurrentPhotos(w http.ResponseWriter, r *http.Request) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}

	photos, err := sh.current.PhotosForCurrent()
	if err != nil {
		log.Printf("Error loading current student's photos: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to load photos"})
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// ClearPhotos deletes every photo of the active project; the irreversible
// bulk delete requires ?confirm=true
func (sh *SessionHandler) ClearPhotos(w http.ResponseWriter, r *http.Request) {
	confirm := r.URL.Query().Get("confirm") == "true"

	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.current == nil {
		WriteAPIError(w, http.StatusNotFound, "no_active_project", "No project is configured; select a project before capturing.")
		return
	}

	if err := sh.current.ClearProjectPhotos(confirm); err != nil {
		if errors.Is(err, session.ErrConfirmationRequired) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bulk delete requires confirm=true"})
		} else {
			log.Printf("Error clearing project photos: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to clear project photos"})
		}
		return
	}

	if sh.Hub != nil {
		sh.Hub.Broadcast(realtime.Event{
			Type:      realtime.EventPhotoDeleted,
			ProjectID: sh.current.Config().ProjectID,
		})
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// snapshot serializes the session state; callers hold the mutex
func (sh *SessionHandler) snapshot() map[string]interface{} {
	current, hasStudent := sh.current.Current()
	state := map[string]interface{}{
		"config":   sh.current.Config(),
		"index":    sh.current.Index(),
		"students": sh.current.Students(),
	}
	if hasStudent {
		state["currentStudent"] = current
	}
	return state
}

func (sh *SessionHandler) snapshotLocked() map[string]interface{} {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.snapshot()
}
