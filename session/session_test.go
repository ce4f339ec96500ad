package session

import (
	"errors"
	"testing"

	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/repository"
)

// fakeCamera returns canned frames so the workflow can run without hardware
type fakeCamera struct {
	frame string
	ok    bool
	calls int
}

func (f *fakeCamera) Capture() (string, bool) {
	f.calls++
	return f.frame, f.ok
}

func newTestSession(students []models.Student, cam Camera) (*Session, *repository.PhotoRepository) {
	store := repository.NewStore(database.NewMemoryKV())
	photos := repository.NewPhotoRepository(store)
	cfg := models.ProjectConfig{ProjectID: "proj_1", ProjectName: "Photos CE1", SessionDate: "2025-05-15"}
	return New(cfg, students, cam, photos), photos
}

func roster(n int) []models.Student {
	students := make([]models.Student, 0, n)
	names := []string{"Alice", "Bob", "Chloé", "David"}
	for i := 0; i < n; i++ {
		students = append(students, models.Student{
			ID:        "s" + string(rune('1'+i)),
			FirstName: names[i%len(names)],
			LastName:  "Martin",
			ClassName: "CE1",
		})
	}
	return students
}

func TestCaptureAdvancesThroughRoster(t *testing.T) {
	cam := &fakeCamera{frame: "data:image/jpeg;base64,AAAA", ok: true}
	s, photos := newTestSession(roster(3), cam)

	// first two captures advance the cursor
	for i := 0; i < 2; i++ {
		photo, complete, err := s.CaptureCurrent()
		if err != nil {
			t.Fatalf("capture %d error = %v", i, err)
		}
		if complete {
			t.Fatalf("capture %d reported roster complete early", i)
		}
		if photo.StudentID != s.Students()[i].ID {
			t.Errorf("capture %d stored for %s, want %s", i, photo.StudentID, s.Students()[i].ID)
		}
		if s.Index() != i+1 {
			t.Errorf("index after capture %d = %d, want %d", i, s.Index(), i+1)
		}
	}

	// last student: cursor stays, completion reported
	_, complete, err := s.CaptureCurrent()
	if err != nil {
		t.Fatalf("final capture error = %v", err)
	}
	if !complete {
		t.Error("final capture did not report roster complete")
	}
	if s.Index() != 2 {
		t.Errorf("index after final capture = %d, want 2", s.Index())
	}

	stored, err := photos.ListByProject("proj_1")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(stored) != 3 {
		t.Errorf("stored %d photos, want 3", len(stored))
	}
}

func TestCaptureFailureLeavesStateUntouched(t *testing.T) {
	cam := &fakeCamera{ok: false}
	s, photos := newTestSession(roster(2), cam)

	_, _, err := s.CaptureCurrent()
	if !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("CaptureCurrent() error = %v, want ErrCaptureFailed", err)
	}
	if s.Index() != 0 {
		t.Errorf("failed capture moved the cursor to %d", s.Index())
	}
	stored, _ := photos.ListByProject("proj_1")
	if len(stored) != 0 {
		t.Errorf("failed capture stored %d photos", len(stored))
	}

	// the camera recovers and the retry succeeds
	cam.frame = "data:image/jpeg;base64,AAAA"
	cam.ok = true
	if _, _, err := s.CaptureCurrent(); err != nil {
		t.Fatalf("retry error = %v", err)
	}
}

func TestCaptureEmptyRoster(t *testing.T) {
	cam := &fakeCamera{frame: "data:image/jpeg;base64,AAAA", ok: true}
	s, _ := newTestSession(nil, cam)

	_, _, err := s.CaptureCurrent()
	if !errors.Is(err, ErrNoCurrentStudent) {
		t.Fatalf("CaptureCurrent() error = %v, want ErrNoCurrentStudent", err)
	}
	if cam.calls != 0 {
		t.Errorf("camera touched %d times with empty roster", cam.calls)
	}
}

func TestAdvanceClampedAtBoundaries(t *testing.T) {
	s, _ := newTestSession(roster(2), &fakeCamera{})

	if _, err := s.Advance(-1); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Advance(-1) at start error = %v, want ErrAtBoundary", err)
	}
	if s.Index() != 0 {
		t.Errorf("boundary move changed index to %d", s.Index())
	}

	if _, err := s.Advance(1); err != nil {
		t.Fatalf("Advance(1) error = %v", err)
	}
	if s.Index() != 1 {
		t.Errorf("index = %d, want 1", s.Index())
	}

	if _, err := s.Advance(1); !errors.Is(err, ErrAtBoundary) {
		t.Errorf("Advance(1) at end error = %v, want ErrAtBoundary", err)
	}
	if s.Index() != 1 {
		t.Errorf("boundary move changed index to %d", s.Index())
	}

	if _, err := s.Advance(-1); err != nil {
		t.Fatalf("Advance(-1) error = %v", err)
	}
	if s.Index() != 0 {
		t.Errorf("index = %d, want 0", s.Index())
	}
}

func TestPhotoFileNameSequencePerStudent(t *testing.T) {
	cam := &fakeCamera{frame: "data:image/jpeg;base64,AAAA", ok: true}
	students := []models.Student{
		{ID: "s1", FirstName: "Alice", LastName: "Martin", ClassName: "CE1 A"},
	}
	s, _ := newTestSession(students, cam)

	first, _, err := s.CaptureCurrent()
	if err != nil {
		t.Fatalf("capture error = %v", err)
	}
	if first.FileName != "CE1-A_Martin_Alice_1.jpg" {
		t.Errorf("first file name = %q", first.FileName)
	}

	second, _, err := s.CaptureCurrent()
	if err != nil {
		t.Fatalf("second capture error = %v", err)
	}
	if second.FileName != "CE1-A_Martin_Alice_2.jpg" {
		t.Errorf("second file name = %q", second.FileName)
	}
	if first.ID == second.ID {
		t.Errorf("photo IDs collide: %q", first.ID)
	}
}

func TestDeletePhotoUpdatesCache(t *testing.T) {
	cam := &fakeCamera{frame: "data:image/jpeg;base64,AAAA", ok: true}
	s, photos := newTestSession(roster(1), cam)

	photo, _, err := s.CaptureCurrent()
	if err != nil {
		t.Fatalf("capture error = %v", err)
	}

	if err := s.DeletePhoto(photo.ID, photo.StudentID); err != nil {
		t.Fatalf("DeletePhoto() error = %v", err)
	}

	current, err := s.PhotosForCurrent()
	if err != nil {
		t.Fatalf("PhotosForCurrent() error = %v", err)
	}
	if len(current) != 0 {
		t.Errorf("cache still holds %d photos after delete", len(current))
	}
	stored, _ := photos.ListByProject("proj_1")
	if len(stored) != 0 {
		t.Errorf("store still holds %d photos after delete", len(stored))
	}
}

func TestClearProjectPhotosRequiresConfirmation(t *testing.T) {
	cam := &fakeCamera{frame: "data:image/jpeg;base64,AAAA", ok: true}
	s, photos := newTestSession(roster(1), cam)

	if _, _, err := s.CaptureCurrent(); err != nil {
		t.Fatalf("capture error = %v", err)
	}

	if err := s.ClearProjectPhotos(false); !errors.Is(err, ErrConfirmationRequired) {
		t.Fatalf("ClearProjectPhotos(false) error = %v, want ErrConfirmationRequired", err)
	}
	stored, _ := photos.ListByProject("proj_1")
	if len(stored) != 1 {
		t.Errorf("unconfirmed clear removed photos")
	}

	if err := s.ClearProjectPhotos(true); err != nil {
		t.Fatalf("ClearProjectPhotos(true) error = %v", err)
	}
	stored, _ = photos.ListByProject("proj_1")
	if len(stored) != 0 {
		t.Errorf("confirmed clear left %d photos", len(stored))
	}
}

func TestSetRosterResetsCursor(t *testing.T) {
	s, _ := newTestSession(roster(3), &fakeCamera{})

	if _, err := s.Advance(1); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	s.SetRoster(roster(2))
	if s.Index() != 0 {
		t.Errorf("index after roster swap = %d, want 0", s.Index())
	}
	if len(s.Students()) != 2 {
		t.Errorf("roster size = %d, want 2", len(s.Students()))
	}
}
