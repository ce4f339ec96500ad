package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/photoclass/photoclassbackend/repository"
)

type ClassHandler struct {
	Classes *repository.ClassRepository
}

func (ch *ClassHandler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := ch.Classes.List()
	if err != nil {
		log.Printf("Error listing school classes: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve classes"})
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

func (ch *ClassHandler) CreateClass(w http.ResponseWriter, r *http.Request) {
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

	class, err := ch.Classes.Create(req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateClassName) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "A class with this name already exists"})
		} else {
			log.Printf("Error creating class '%s': %v", req.Name, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create class"})
		}
		return
	}
	writeJSON(w, http.StatusCreated, class)
}
