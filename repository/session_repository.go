package repository

import (
	"github.com/photoclass/photoclassbackend/models"
)

// SessionRepository handles the active-project pointer and the theme
// preference, both single-value slots with last-write-wins semantics
type SessionRepository struct {
	store *Store
}

// NewSessionRepository creates a new instance of SessionRepository
func NewSessionRepository(store *Store) *SessionRepository {
	return &SessionRepository{store: store}
}

// GetConfig returns the active project pointer. A stored pointer missing any
// required field is reported as absent, matching the configuration-error
// handling for malformed pointers.
func (r *SessionRepository) GetConfig() (models.ProjectConfig, bool, error) {
	var cfg models.ProjectConfig
	if err := r.store.loadJSON(keyProjectConfig, &cfg); err != nil {
		return models.ProjectConfig{}, false, err
	}
	if !cfg.IsValid() {
		return models.ProjectConfig{}, false, nil
	}
	return cfg, true, nil
}

// SetConfig overwrites the active project pointer
func (r *SessionRepository) SetConfig(cfg models.ProjectConfig) error {
	unlock := r.store.lockKey(keyProjectConfig)
	defer unlock()
	return r.store.storeJSON(keyProjectConfig, cfg)
}

// GetTheme returns the stored theme preference, defaulting to "light"
func (r *SessionRepository) GetTheme() (string, error) {
	var theme string
	if err := r.store.loadJSON(keyTheme, &theme); err != nil {
		return "", err
	}
	if theme != "dark" {
		theme = "light"
	}
	return theme, nil
}

// SetTheme stores the theme preference
func (r *SessionRepository) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return ErrInvalidTheme
	}
	unlock := r.store.lockKey(keyTheme)
	defer unlock()
	return r.store.storeJSON(keyTheme, theme)
}
