package repository

import (
	"fmt"
	"time"

	"github.com/photoclass/photoclassbackend/models"
)

// StudentRepository handles the per-project roster slots. Each project has
// its own storage key holding the ordered roster.
type StudentRepository struct {
	store *Store
}

// NewStudentRepository creates a new instance of StudentRepository
func NewStudentRepository(store *Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// ListByProject returns the project's roster in stored order; an empty slice
// when the project has no roster
func (r *StudentRepository) ListByProject(projectID string) ([]models.Student, error) {
	students := []models.Student{}
	if err := r.store.loadJSON(studentsKey(projectID), &students); err != nil {
		return nil, err
	}
	return students, nil
}

// ReplaceAll makes students the entire roster for the project
func (r *StudentRepository) ReplaceAll(projectID string, students []models.Student) error {
	unlock := r.store.lockKey(studentsKey(projectID))
	defer unlock()
	return r.store.storeJSON(studentsKey(projectID), students)
}

// AppendUnique unions the batch with the existing roster, de-duplicating
// strictly by student ID, and returns how many records were actually added.
// Freshly generated import IDs never collide with earlier batches, so in
// practice this is a pure append; de-dup by ID is kept for compatibility
// with rosters written by older versions of the data.
func (r *StudentRepository) AppendUnique(projectID string, students []models.Student) (int, error) {
	key := studentsKey(projectID)
	unlock := r.store.lockKey(key)
	defer unlock()

	var existing []models.Student
	if err := r.store.loadJSON(key, &existing); err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.ID] = true
	}

	added := 0
	for _, s := range students {
		if seen[s.ID] {
			continue
		}
		existing = append(existing, s)
		seen[s.ID] = true
		added++
	}

	if err := r.store.storeJSON(key, existing); err != nil {
		return 0, err
	}
	return added, nil
}

// Add appends a manually entered student and returns the created record
func (r *StudentRepository) Add(projectID, firstName, lastName, className string) (models.Student, error) {
	key := studentsKey(projectID)
	unlock := r.store.lockKey(key)
	defer unlock()

	var students []models.Student
	if err := r.store.loadJSON(key, &students); err != nil {
		return models.Student{}, err
	}

	student := models.Student{
		ID:        fmt.Sprintf("student_%s_%d_manual_%d", projectID, time.Now().UnixMilli(), len(students)),
		FirstName: firstName,
		LastName:  lastName,
		ClassName: className,
	}
	students = append(students, student)

	if err := r.store.storeJSON(key, students); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// Update edits a student's name and class in place
func (r *StudentRepository) Update(projectID, studentID, firstName, lastName, className string) (models.Student, error) {
	key := studentsKey(projectID)
	unlock := r.store.lockKey(key)
	defer unlock()

	var students []models.Student
	if err := r.store.loadJSON(key, &students); err != nil {
		return models.Student{}, err
	}

	for i := range students {
		if students[i].ID == studentID {
			students[i].FirstName = firstName
			students[i].LastName = lastName
			students[i].ClassName = className
			if err := r.store.storeJSON(key, students); err != nil {
				return models.Student{}, err
			}
			return students[i], nil
		}
	}
	return models.Student{}, ErrNotFound
}

// DeleteRoster removes the whole roster slot for a project. Existing photos
// keep their student references; the relationship is not enforced.
func (r *StudentRepository) DeleteRoster(projectID string) error {
	key := studentsKey(projectID)
	unlock := r.store.lockKey(key)
	defer unlock()
	return r.store.deleteKey(key)
}
