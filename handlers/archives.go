package handlers

import (
	"log"
	"net/http"

	"github.com/facette/natsort"

	"github.com/photoclass/photoclassbackend/repository"
)

// ArchivesHandler summarizes every project's captured files for the archive
// browsing view
type ArchivesHandler struct {
	Projects *repository.ProjectRepository
	Photos   *repository.PhotoRepository
}

type projectArchive struct {
	ProjectID   string   `json:"projectId"`
	ProjectName string   `json:"projectName"`
	PhotoCount  int      `json:"photoCount"`
	FileNames   []string `json:"fileNames"`
}

// List groups all photos by project. File names are naturally sorted so
// sequence numbers order 2 before 10.
func (ah *ArchivesHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := ah.Projects.List()
	if err != nil {
		log.Printf("Error listing projects for archives: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve projects"})
		return
	}

	photos, err := ah.Photos.ListAll()
	if err != nil {
		log.Printf("Error listing photos for archives: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to retrieve photos"})
		return
	}

	filesByProject := make(map[string][]string)
	for _, p := range photos {
		filesByProject[p.ProjectID] = append(filesByProject[p.ProjectID], p.FileName)
	}

	archives := []projectArchive{}
	for _, project := range projects {
		fileNames := filesByProject[project.ID]
		if fileNames == nil {
			fileNames = []string{}
		}
		natsort.Sort(fileNames)
		archives = append(archives, projectArchive{
			ProjectID:   project.ID,
			ProjectName: project.Name,
			PhotoCount:  len(fileNames),
			FileNames:   fileNames,
		})
	}
	writeJSON(w, http.StatusOK, archives)
}
