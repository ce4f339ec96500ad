package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/media"
	"github.com/photoclass/photoclassbackend/realtime"
	"github.com/photoclass/photoclassbackend/repository"
)

type PhotoHandler struct {
	Photos *repository.PhotoRepository
	DB     *sql.DB
	Media  media.Store
	Hub    *realtime.Hub
}

// ListByProject returns a project's photos in capture order
func (ph *PhotoHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	photos, err := ph.Photos.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing photos for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve photos"})
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// ListByStudent returns one student's photos within a project
func (ph *PhotoHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")
	studentID := chi.URLParam(r, "student_id")

	photos, err := ph.Photos.ListByStudent(studentID, projectID)
	if err != nil {
		log.Printf("Error listing photos for student %s: %v", studentID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve photos"})
		return
	}
	writeJSON(w, http.StatusOK, photos)
}

// DeletePhoto removes a photo record plus its generated preview. Deleting a
// missing photo still succeeds; the preview cleanup is best-effort.
func (ph *PhotoHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photo_id")

	info, err := database.GetThumbnailInfo(ph.DB, photoID)
	if err == nil {
		if delErr := ph.Media.Delete(info.ThumbnailPath); delErr != nil {
			log.Printf("Error deleting thumbnail file for photo %s: %v", photoID, delErr)
		}
		if delErr := database.DeleteThumbnailInfo(ph.DB, photoID); delErr != nil {
			log.Printf("Error deleting thumbnail record for photo %s: %v", photoID, delErr)
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("Error looking up thumbnail for photo %s: %v", photoID, err)
	}

	if err := ph.Photos.Delete(photoID); err != nil {
		log.Printf("Error deleting photo %s: %v", photoID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photo"})
		return
	}

	if ph.Hub != nil {
		ph.Hub.Broadcast(realtime.Event{Type: realtime.EventPhotoDeleted, PhotoID: photoID})
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// DeleteByProject removes every photo of a project; the irreversible bulk
// delete requires ?confirm=true
func (ph *PhotoHandler) DeleteByProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "project_id")

	if r.URL.Query().Get("confirm") != "true" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Bulk delete requires confirm=true"})
		return
	}

	photos, err := ph.Photos.ListByProject(projectID)
	if err != nil {
		log.Printf("Error listing photos before bulk delete for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photos"})
		return
	}
	for _, p := range photos {
		info, err := database.GetThumbnailInfo(ph.DB, p.ID)
		if err != nil {
			continue
		}
		if delErr := ph.Media.Delete(info.ThumbnailPath); delErr != nil {
			log.Printf("Error deleting thumbnail file for photo %s: %v", p.ID, delErr)
		}
		if delErr := database.DeleteThumbnailInfo(ph.DB, p.ID); delErr != nil {
			log.Printf("Error deleting thumbnail record for photo %s: %v", p.ID, delErr)
		}
	}

	if err := ph.Photos.DeleteByProject(projectID); err != nil {
		log.Printf("Error bulk deleting photos for project %s: %v", projectID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to delete photos"})
		return
	}

	if ph.Hub != nil {
		ph.Hub.Broadcast(realtime.Event{Type: realtime.EventPhotoDeleted, ProjectID: projectID})
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// ServeThumbnail streams a photo's generated preview, falling back to 404
// while generation is still pending
func (ph *PhotoHandler) ServeThumbnail(w http.ResponseWriter, r *http.Request) {
	photoID := chi.URLParam(r, "photo_id")

	info, err := database.GetThumbnailInfo(ph.DB, photoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
		} else {
			log.Printf("Error looking up thumbnail for photo %s: %v", photoID, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	fullPath, err := ph.Media.GetFullPath(info.ThumbnailPath)
	if err != nil {
		log.Printf("Error resolving thumbnail path for photo %s: %v", photoID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.ServeFile(w, r, fullPath)
}
