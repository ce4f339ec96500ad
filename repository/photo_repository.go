package repository

import (
	"github.com/photoclass/photoclassbackend/models"
)

// PhotoRepository handles record-store operations for captured photos. All
// photos live in a single global collection; queries filter in memory and
// preserve insertion order.
type PhotoRepository struct {
	store *Store
}

// NewPhotoRepository creates a new instance of PhotoRepository
func NewPhotoRepository(store *Store) *PhotoRepository {
	return &PhotoRepository{store: store}
}

// Save appends a photo to the collection. The caller is responsible for ID
// uniqueness; the composite studentID_projectID_timestamp convention
// guarantees it in practice. Duplicate IDs are not checked.
func (r *PhotoRepository) Save(photo models.CapturedPhoto) error {
	if photo.ProjectID == "" {
		return ErrMissingProjectID
	}

	unlock := r.store.lockKey(keyPhotos)
	defer unlock()

	var photos []models.CapturedPhoto
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return err
	}
	photos = append(photos, photo)
	return r.store.storeJSON(keyPhotos, photos)
}

// ListByStudent returns all photos for a student within a project; an empty
// slice when none match
func (r *PhotoRepository) ListByStudent(studentID, projectID string) ([]models.CapturedPhoto, error) {
	var photos []models.CapturedPhoto
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return nil, err
	}
	matched := []models.CapturedPhoto{}
	for _, p := range photos {
		if p.StudentID == studentID && p.ProjectID == projectID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListByProject returns all photos for a project in insertion order
func (r *PhotoRepository) ListByProject(projectID string) ([]models.CapturedPhoto, error) {
	var photos []models.CapturedPhoto
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return nil, err
	}
	matched := []models.CapturedPhoto{}
	for _, p := range photos {
		if p.ProjectID == projectID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListAll returns the entire photo collection in insertion order
func (r *PhotoRepository) ListAll() ([]models.CapturedPhoto, error) {
	photos := []models.CapturedPhoto{}
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

// Delete removes the photo with the given ID. Deleting a missing photo is a
// no-op, never an error.
func (r *PhotoRepository) Delete(photoID string) error {
	unlock := r.store.lockKey(keyPhotos)
	defer unlock()

	var photos []models.CapturedPhoto
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return err
	}
	kept := photos[:0]
	for _, p := range photos {
		if p.ID != photoID {
			kept = append(kept, p)
		}
	}
	return r.store.storeJSON(keyPhotos, kept)
}

// DeleteByProject removes every photo belonging to the project, leaving all
// other projects' photos untouched
func (r *PhotoRepository) DeleteByProject(projectID string) error {
	unlock := r.store.lockKey(keyPhotos)
	defer unlock()

	var photos []models.CapturedPhoto
	if err := r.store.loadJSON(keyPhotos, &photos); err != nil {
		return err
	}
	kept := photos[:0]
	for _, p := range photos {
		if p.ProjectID != projectID {
			kept = append(kept, p)
		}
	}
	return r.store.storeJSON(keyPhotos, kept)
}
