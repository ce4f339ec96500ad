package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/photoclass/photoclassbackend/models"
)

// ClassRepository handles the global set of school classes offered as
// class-name suggestions
type ClassRepository struct {
	store *Store
}

// NewClassRepository creates a new instance of ClassRepository
func NewClassRepository(store *Store) *ClassRepository {
	return &ClassRepository{store: store}
}

// List returns every school class in stored order
func (r *ClassRepository) List() ([]models.SchoolClass, error) {
	classes := []models.SchoolClass{}
	if err := r.store.loadJSON(keySchoolClasses, &classes); err != nil {
		return nil, err
	}
	return classes, nil
}

// Create adds a class; names must be unique case-insensitively
func (r *ClassRepository) Create(name string) (models.SchoolClass, error) {
	unlock := r.store.lockKey(keySchoolClasses)
	defer unlock()

	var classes []models.SchoolClass
	if err := r.store.loadJSON(keySchoolClasses, &classes); err != nil {
		return models.SchoolClass{}, err
	}

	for _, c := range classes {
		if strings.EqualFold(c.Name, name) {
			return models.SchoolClass{}, ErrDuplicateClassName
		}
	}

	class := models.SchoolClass{
		ID:   fmt.Sprintf("class_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
		Name: name,
	}
	classes = append(classes, class)

	if err := r.store.storeJSON(keySchoolClasses, classes); err != nil {
		return models.SchoolClass{}, err
	}
	return class, nil
}
