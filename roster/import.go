package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/photoclass/photoclassbackend/models"
)

// MergePolicy selects how an imported batch combines with an existing roster
type MergePolicy string

const (
	// MergeReplace makes the batch the entire roster
	MergeReplace MergePolicy = "replace"
	// MergeAppendUnique unions the batch with the existing roster,
	// de-duplicated by student ID
	MergeAppendUnique MergePolicy = "append"
)

var (
	// ErrMalformedInput is returned when the payload has fewer than a
	// header line plus one data row
	ErrMalformedInput = errors.New("csv must contain a header and at least one data row")

	// ErrMissingColumns is returned when the header lacks any of the
	// required Prénom, Nom, Classe columns
	ErrMissingColumns = errors.New("csv header must contain Prénom, Nom and Classe columns")
)

// ParseRoster parses a raw CSV payload into student records for a project.
//
// Lines are split on \r\n or \n only; a bare carriage return stays inside
// its field. Blank lines are discarded before parsing. The header is the
// first line carrying all three required columns, matched case-insensitively
// after trimming; lines before it (such as the metadata lines a previously
// exported file starts with) are skipped, so exports re-import cleanly. Data
// rows are split on commas positionally with no quoting support, so a comma
// inside a field misaligns columns — a deliberate limitation of the simple
// parser. Empty cells get deterministic placeholders embedding the row index
// instead of failing the batch: header validation is strict, rows are
// tolerant.
func ParseRoster(text, projectID string) ([]models.Student, error) {
	rawLines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}

	if len(lines) <= 1 {
		return nil, ErrMalformedInput
	}

	headerIdx, firstNameIdx, lastNameIdx, classNameIdx := -1, -1, -1, -1
	for i, line := range lines {
		f, l, c := headerColumns(line)
		if f != -1 && l != -1 && c != -1 {
			headerIdx, firstNameIdx, lastNameIdx, classNameIdx = i, f, l, c
			break
		}
	}
	if headerIdx == -1 {
		return nil, ErrMissingColumns
	}
	if headerIdx == len(lines)-1 {
		return nil, ErrMalformedInput
	}

	batchStamp := time.Now().UnixMilli()
	students := make([]models.Student, 0, len(lines)-headerIdx-1)
	for i, line := range lines[headerIdx+1:] {
		values := strings.Split(line, ",")
		for j := range values {
			values[j] = strings.TrimSpace(values[j])
		}

		students = append(students, models.Student{
			ID:        fmt.Sprintf("student_%s_csv_%d_%d", projectID, batchStamp, i),
			FirstName: cellOrPlaceholder(values, firstNameIdx, fmt.Sprintf("PrénomInconnu%d", i)),
			LastName:  cellOrPlaceholder(values, lastNameIdx, fmt.Sprintf("NomInconnu%d", i)),
			ClassName: cellOrPlaceholder(values, classNameIdx, "ClasseInconnue"),
		})
	}
	return students, nil
}

// headerColumns reports the column positions of the three required headers
// in a line, -1 each when absent
func headerColumns(line string) (firstName, lastName, className int) {
	firstName, lastName, className = -1, -1, -1
	for i, h := range strings.Split(line, ",") {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "prénom":
			firstName = i
		case "nom":
			lastName = i
		case "classe":
			className = i
		}
	}
	return firstName, lastName, className
}

func cellOrPlaceholder(values []string, idx int, placeholder string) string {
	if idx < len(values) && values[idx] != "" {
		return values[idx]
	}
	return placeholder
}
