package roster

import (
	"errors"
	"fmt"
	"strings"

	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/utils"
)

// ErrNothingToExport is reported when a project has neither photos nor
// students; no file is produced in that case
var ErrNothingToExport = errors.New("no photos or students to export")

const exportHeader = "Classe,Nom,Prénom,FichierPhoto\n"

// BuildExport produces the CSV document for a project: two metadata lines,
// a blank separator, the fixed header, then one row per photo joined to its
// student. A project with students but no photos exports the roster with an
// empty file-name column. Photos whose student is gone are skipped silently;
// the orphaned records stay in the store but have no display context.
func BuildExport(cfg models.ProjectConfig, students []models.Student, photos []models.CapturedPhoto) (string, error) {
	if len(photos) == 0 && len(students) == 0 {
		return "", ErrNothingToExport
	}

	byID := make(map[string]models.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Projet: %s\n", cfg.ProjectName))
	b.WriteString(fmt.Sprintf("Date Séance: %s\n\n", formatSessionDate(cfg.SessionDate)))
	b.WriteString(exportHeader)

	if len(photos) > 0 {
		for _, photo := range photos {
			student, ok := byID[photo.StudentID]
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("%s,%s,%s,%s\n", student.ClassName, student.LastName, student.FirstName, photo.FileName))
		}
	} else {
		for _, student := range students {
			b.WriteString(fmt.Sprintf("%s,%s,%s,\n", student.ClassName, student.LastName, student.FirstName))
		}
	}

	return b.String(), nil
}

// ExportFileName builds the download name:
// export_<project name with spaces as underscores>_<sessionDate>.csv
func ExportFileName(cfg models.ProjectConfig) string {
	name := strings.Join(strings.Fields(cfg.ProjectName), "_")
	return fmt.Sprintf("export_%s_%s.csv", name, cfg.SessionDate)
}

func formatSessionDate(sessionDate string) string {
	t, err := utils.ParseSessionDate(sessionDate)
	if err != nil {
		return sessionDate
	}
	return utils.FormatFrenchDate(t)
}
