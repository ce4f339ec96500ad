package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/photoclass/photoclassbackend/repository"
)

type SettingsHandler struct {
	Sessions *repository.SessionRepository
}

func (sh *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := sh.Sessions.GetTheme()
	if err != nil {
		log.Printf("Error reading theme preference: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to read theme"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (sh *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing required field: theme"})
		return
	}

	if err := sh.Sessions.SetTheme(req.Theme); err != nil {
		if errors.Is(err, repository.ErrInvalidTheme) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "theme must be \"light\" or \"dark\""})
		} else {
			log.Printf("Error storing theme preference: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to store theme"})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
