package repository

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/utils"
)

// ProjectRepository handles the project index plus the cascades a project
// deletion triggers across the roster and photo collections
type ProjectRepository struct {
	store    *Store
	students *StudentRepository
	photos   *PhotoRepository
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(store *Store, students *StudentRepository, photos *PhotoRepository) *ProjectRepository {
	return &ProjectRepository{store: store, students: students, photos: photos}
}

// List returns the stored project index in order
func (r *ProjectRepository) List() ([]models.Project, error) {
	projects := []models.Project{}
	if err := r.store.loadJSON(keyProjects, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Get returns the project with the given ID
func (r *ProjectRepository) Get(projectID string) (models.Project, error) {
	projects, err := r.List()
	if err != nil {
		return models.Project{}, err
	}
	for _, p := range projects {
		if p.ID == projectID {
			return p, nil
		}
	}
	return models.Project{}, ErrNotFound
}

// Create appends a new project with a fresh identifier and creation date
func (r *ProjectRepository) Create(name string) (models.Project, error) {
	unlock := r.store.lockKey(keyProjects)
	defer unlock()

	var projects []models.Project
	if err := r.store.loadJSON(keyProjects, &projects); err != nil {
		return models.Project{}, err
	}

	project := models.Project{
		ID:          fmt.Sprintf("proj_%s", strings.ReplaceAll(uuid.NewString(), "-", "")[:12]),
		Name:        name,
		CreatedDate: utils.FormatFrenchDate(time.Now()),
		Color:       "bg-primary",
		IconColor:   "bg-blue-100 text-primary",
	}
	projects = append(projects, project)

	if err := r.store.storeJSON(keyProjects, projects); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// Rename updates a project's display name
func (r *ProjectRepository) Rename(projectID, name string) (models.Project, error) {
	unlock := r.store.lockKey(keyProjects)
	defer unlock()

	var projects []models.Project
	if err := r.store.loadJSON(keyProjects, &projects); err != nil {
		return models.Project{}, err
	}

	for i := range projects {
		if projects[i].ID == projectID {
			projects[i].Name = name
			if err := r.store.storeJSON(keyProjects, projects); err != nil {
				return models.Project{}, err
			}
			return projects[i], nil
		}
	}
	return models.Project{}, ErrNotFound
}

// Delete removes a project and cascades to its photos and roster slot
func (r *ProjectRepository) Delete(projectID string) error {
	if err := r.photos.DeleteByProject(projectID); err != nil {
		return fmt.Errorf("failed to delete photos for project %s: %w", projectID, err)
	}
	if err := r.students.DeleteRoster(projectID); err != nil {
		return fmt.Errorf("failed to delete roster for project %s: %w", projectID, err)
	}

	unlock := r.store.lockKey(keyProjects)
	defer unlock()

	var projects []models.Project
	if err := r.store.loadJSON(keyProjects, &projects); err != nil {
		return err
	}
	kept := projects[:0]
	for _, p := range projects {
		if p.ID != projectID {
			kept = append(kept, p)
		}
	}
	return r.store.storeJSON(keyProjects, kept)
}

// Summaries enriches every project with its derived counts: roster size,
// photo count and completion percentage (students with at least one photo
// over total students, rounded; zero when the roster is empty)
func (r *ProjectRepository) Summaries() ([]models.ProjectSummary, error) {
	projects, err := r.List()
	if err != nil {
		return nil, err
	}
	allPhotos, err := r.photos.ListAll()
	if err != nil {
		return nil, err
	}

	photosByProject := make(map[string][]models.CapturedPhoto)
	for _, p := range allPhotos {
		photosByProject[p.ProjectID] = append(photosByProject[p.ProjectID], p)
	}

	summaries := make([]models.ProjectSummary, 0, len(projects))
	for _, proj := range projects {
		students, err := r.students.ListByProject(proj.ID)
		if err != nil {
			return nil, err
		}
		projectPhotos := photosByProject[proj.ID]

		progress := 0
		if len(students) > 0 && len(projectPhotos) > 0 {
			withPhoto := make(map[string]bool)
			for _, p := range projectPhotos {
				withPhoto[p.StudentID] = true
			}
			covered := 0
			for _, s := range students {
				if withPhoto[s.ID] {
					covered++
				}
			}
			progress = int(math.Round(float64(covered) / float64(len(students)) * 100))
		}

		summaries = append(summaries, models.ProjectSummary{
			Project:  proj,
			Students: len(students),
			Photos:   len(projectPhotos),
			Progress: progress,
		})
	}
	return summaries, nil
}
