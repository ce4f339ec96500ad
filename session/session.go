package session

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/repository"
)

var (
	// ErrNoCurrentStudent is returned when the roster is empty
	ErrNoCurrentStudent = errors.New("no current student")

	// ErrCaptureFailed is returned when the camera produced no frame;
	// no state changes and the caller may retry
	ErrCaptureFailed = errors.New("could not capture a frame from the webcam")

	// ErrAtBoundary is reported instead of moving past either end of the
	// roster
	ErrAtBoundary = errors.New("already at roster boundary")

	// ErrConfirmationRequired guards the irreversible project-wide photo
	// delete
	ErrConfirmationRequired = errors.New("bulk delete requires explicit confirmation")
)

// Camera is the slice of the capture controller the workflow needs
type Camera interface {
	Capture() (dataURL string, ok bool)
}

// Session sequences the per-student capture workflow for one active
// project. It owns the current-student index and a per-student photo cache;
// the record store stays the sole source of truth and the cache is refreshed
// after every mutation.
type Session struct {
	cfg      models.ProjectConfig
	students []models.Student
	index    int

	camera Camera
	photos *repository.PhotoRepository

	photosByStudent map[string][]models.CapturedPhoto
}

// New builds a workflow session for the active project and its roster
func New(cfg models.ProjectConfig, students []models.Student, camera Camera, photos *repository.PhotoRepository) *Session {
	return &Session{
		cfg:             cfg,
		students:        students,
		camera:          camera,
		photos:          photos,
		photosByStudent: make(map[string][]models.CapturedPhoto),
	}
}

// Config returns the active project pointer the session was built from
func (s *Session) Config() models.ProjectConfig {
	return s.cfg
}

// Students returns the roster in order
func (s *Session) Students() []models.Student {
	return s.students
}

// Index returns the zero-based current-student index
func (s *Session) Index() int {
	return s.index
}

// Current returns the student under the cursor
func (s *Session) Current() (models.Student, bool) {
	if len(s.students) == 0 {
		return models.Student{}, false
	}
	return s.students[s.index], true
}

// SetRoster replaces the roster and resets the cursor, used after an import
func (s *Session) SetRoster(students []models.Student) {
	s.students = students
	s.index = 0
	s.photosByStudent = make(map[string][]models.CapturedPhoto)
}

// Advance moves the cursor by direction (±1), clamped to the roster. Moving
// past either end reports ErrAtBoundary and leaves the index unchanged.
func (s *Session) Advance(direction int) (models.Student, error) {
	if len(s.students) == 0 {
		return models.Student{}, ErrNoCurrentStudent
	}

	next := s.index + direction
	if next < 0 || next > len(s.students)-1 {
		return s.students[s.index], ErrAtBoundary
	}
	s.index = next
	return s.students[s.index], nil
}

// CaptureCurrent grabs a frame for the current student, persists it as a
// photo record, and advances the cursor. rosterComplete is true when the
// capture landed on the last student; the cursor then stays put.
//
// A nil frame reports ErrCaptureFailed with no state change. The cursor only
// advances after the photo is durably stored.
func (s *Session) CaptureCurrent() (models.CapturedPhoto, bool, error) {
	student, ok := s.Current()
	if !ok {
		return models.CapturedPhoto{}, false, ErrNoCurrentStudent
	}

	dataURL, ok := s.camera.Capture()
	if !ok {
		return models.CapturedPhoto{}, false, ErrCaptureFailed
	}

	existing, err := s.photosForStudent(student.ID)
	if err != nil {
		return models.CapturedPhoto{}, false, err
	}

	timestamp := time.Now().UnixMilli()
	photo := models.CapturedPhoto{
		ID:           models.PhotoID(student.ID, s.cfg.ProjectID, timestamp),
		StudentID:    student.ID,
		ProjectID:    s.cfg.ProjectID,
		PhotoDataURL: dataURL,
		FileName:     models.PhotoFileName(student, len(existing)+1),
		Timestamp:    timestamp,
	}

	if err := s.photos.Save(photo); err != nil {
		return models.CapturedPhoto{}, false, fmt.Errorf("failed to save photo for %s %s: %w", student.FirstName, student.LastName, err)
	}
	s.photosByStudent[student.ID] = append(s.photosByStudent[student.ID], photo)

	rosterComplete := s.index >= len(s.students)-1
	if !rosterComplete {
		s.index++
	}
	return photo, rosterComplete, nil
}

// PhotosForCurrent lists the current student's photos, serving the preview
// strip
func (s *Session) PhotosForCurrent() ([]models.CapturedPhoto, error) {
	student, ok := s.Current()
	if !ok {
		return []models.CapturedPhoto{}, nil
	}
	return s.photosForStudent(student.ID)
}

// DeletePhoto removes one photo from the store and the cache
func (s *Session) DeletePhoto(photoID, studentID string) error {
	if err := s.photos.Delete(photoID); err != nil {
		return err
	}
	cached := s.photosByStudent[studentID]
	kept := cached[:0]
	for _, p := range cached {
		if p.ID != photoID {
			kept = append(kept, p)
		}
	}
	s.photosByStudent[studentID] = kept
	return nil
}

// ClearProjectPhotos deletes every photo of the active project. The caller
// must pass confirm=true; the operation is irreversible.
func (s *Session) ClearProjectPhotos(confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}
	if err := s.photos.DeleteByProject(s.cfg.ProjectID); err != nil {
		return fmt.Errorf("failed to clear photos for project %s: %w", s.cfg.ProjectID, err)
	}
	s.photosByStudent = make(map[string][]models.CapturedPhoto)
	log.Printf("session: cleared all photos for project %s", s.cfg.ProjectID)
	return nil
}

// photosForStudent reads through the cache, filling it from the store on
// first access
func (s *Session) photosForStudent(studentID string) ([]models.CapturedPhoto, error) {
	if cached, ok := s.photosByStudent[studentID]; ok {
		return cached, nil
	}
	photos, err := s.photos.ListByStudent(studentID, s.cfg.ProjectID)
	if err != nil {
		return nil, err
	}
	s.photosByStudent[studentID] = photos
	return photos, nil
}
