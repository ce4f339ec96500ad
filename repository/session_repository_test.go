package repository

import (
	"errors"
	"testing"

	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/models"
)

func TestSessionConfigRoundTrip(t *testing.T) {
	repo := NewSessionRepository(newTestStore())

	_, found, err := repo.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if found {
		t.Error("GetConfig() found a pointer in an empty store")
	}

	cfg := models.ProjectConfig{ProjectID: "proj_1", ProjectName: "Photos CE1", SessionDate: "2025-05-15"}
	if err := repo.SetConfig(cfg); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}

	got, found, err := repo.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if !found || got != cfg {
		t.Errorf("GetConfig() = %+v found=%v, want %+v", got, found, cfg)
	}

	// last write wins
	cfg2 := models.ProjectConfig{ProjectID: "proj_2", ProjectName: "Maternelle", SessionDate: "2025-06-01"}
	if err := repo.SetConfig(cfg2); err != nil {
		t.Fatalf("SetConfig() error = %v", err)
	}
	got, _, _ = repo.GetConfig()
	if got != cfg2 {
		t.Errorf("GetConfig() after overwrite = %+v, want %+v", got, cfg2)
	}
}

func TestSessionConfigIncompleteTreatedAsAbsent(t *testing.T) {
	kv := database.NewMemoryKV()
	if err := kv.Set(keyProjectConfig, []byte(`{"projectId":"proj_1"}`)); err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	repo := NewSessionRepository(NewStore(kv))

	_, found, err := repo.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig() error = %v", err)
	}
	if found {
		t.Error("incomplete pointer reported as present")
	}
}

func TestSessionTheme(t *testing.T) {
	repo := NewSessionRepository(newTestStore())

	theme, err := repo.GetTheme()
	if err != nil {
		t.Fatalf("GetTheme() error = %v", err)
	}
	if theme != "light" {
		t.Errorf("default theme = %q, want light", theme)
	}

	if err := repo.SetTheme("dark"); err != nil {
		t.Fatalf("SetTheme() error = %v", err)
	}
	theme, _ = repo.GetTheme()
	if theme != "dark" {
		t.Errorf("theme after set = %q, want dark", theme)
	}

	if err := repo.SetTheme("solarized"); !errors.Is(err, ErrInvalidTheme) {
		t.Errorf("SetTheme(solarized) error = %v, want ErrInvalidTheme", err)
	}
}
