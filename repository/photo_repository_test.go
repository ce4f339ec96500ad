package repository

import (
	"errors"
	"testing"

	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/models"
)

func newTestStore() *Store {
	return NewStore(database.NewMemoryKV())
}

func photo(id, studentID, projectID string) models.CapturedPhoto {
	return models.CapturedPhoto{
		ID:           id,
		StudentID:    studentID,
		ProjectID:    projectID,
		PhotoDataURL: "data:image/jpeg;base64,AAAA",
		FileName:     id + ".jpg",
		Timestamp:    1,
	}
}

func TestPhotoSaveRequiresProjectID(t *testing.T) {
	repo := NewPhotoRepository(newTestStore())

	err := repo.Save(photo("p1", "s1", ""))
	if !errors.Is(err, ErrMissingProjectID) {
		t.Fatalf("Save() error = %v, want ErrMissingProjectID", err)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("rejected save still stored %d photos", len(all))
	}
}

func TestPhotoListFilters(t *testing.T) {
	repo := NewPhotoRepository(newTestStore())

	for _, p := range []models.CapturedPhoto{
		photo("p1", "s1", "projA"),
		photo("p2", "s1", "projB"),
		photo("p3", "s2", "projA"),
		photo("p4", "s1", "projA"),
	} {
		if err := repo.Save(p); err != nil {
			t.Fatalf("Save(%s) error = %v", p.ID, err)
		}
	}

	byStudent, err := repo.ListByStudent("s1", "projA")
	if err != nil {
		t.Fatalf("ListByStudent() error = %v", err)
	}
	if len(byStudent) != 2 || byStudent[0].ID != "p1" || byStudent[1].ID != "p4" {
		t.Errorf("ListByStudent() = %+v, want p1 then p4", byStudent)
	}

	byProject, err := repo.ListByProject("projA")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(byProject) != 3 {
		t.Errorf("ListByProject() returned %d photos, want 3", len(byProject))
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAll() returned %d photos, want 4", len(all))
	}
}

func TestPhotoDeleteIdempotent(t *testing.T) {
	repo := NewPhotoRepository(newTestStore())

	if err := repo.Save(photo("p1", "s1", "projA")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete("p1"); err != nil {
		t.Fatalf("second Delete() error = %v, want nil", err)
	}
	if err := repo.Delete("never-existed"); err != nil {
		t.Fatalf("Delete(missing) error = %v, want nil", err)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("collection has %d photos after delete, want 0", len(all))
	}
}

func TestPhotoDeleteByProjectIsolation(t *testing.T) {
	repo := NewPhotoRepository(newTestStore())

	for _, p := range []models.CapturedPhoto{
		photo("p1", "s1", "projA"),
		photo("p2", "s2", "projB"),
		photo("p3", "s1", "projA"),
	} {
		if err := repo.Save(p); err != nil {
			t.Fatalf("Save(%s) error = %v", p.ID, err)
		}
	}

	if err := repo.DeleteByProject("projA"); err != nil {
		t.Fatalf("DeleteByProject() error = %v", err)
	}

	all, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(all) != 1 || all[0].ID != "p2" {
		t.Errorf("other projects' photos affected: %+v", all)
	}
}

func TestPhotoMalformedPayloadTreatedAsEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", "{not json"},
		{"wrong element shape", `[{"id":123,"studentId":7}]`},
		{"wrong container shape", `{"id":"p1"}`},
		{"scalar payload", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := database.NewMemoryKV()
			if err := kv.Set(keyPhotos, []byte(tt.payload)); err != nil {
				t.Fatalf("seeding payload: %v", err)
			}
			repo := NewPhotoRepository(NewStore(kv))

			all, err := repo.ListAll()
			if err != nil {
				t.Fatalf("ListAll() error = %v, want graceful empty", err)
			}
			if len(all) != 0 {
				t.Errorf("ListAll() = %+v, want empty (no partially decoded records)", all)
			}

			// writes recover the slot
			if err := repo.Save(photo("p1", "s1", "projA")); err != nil {
				t.Fatalf("Save() after bad payload error = %v", err)
			}
			all, err = repo.ListAll()
			if err != nil {
				t.Fatalf("ListAll() error = %v", err)
			}
			if len(all) != 1 {
				t.Errorf("collection has %d photos, want 1", len(all))
			}
		})
	}
}
