package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/photoclass/photoclassbackend/database"
	"github.com/photoclass/photoclassbackend/models"
	"github.com/photoclass/photoclassbackend/repository"
)

func newStudentRouter() (*chi.Mux, *repository.StudentRepository) {
	store := repository.NewStore(database.NewMemoryKV())
	students := repository.NewStudentRepository(store)
	handler := &StudentHandler{Students: students}

	r := chi.NewRouter()
	r.Route("/api/projects/{project_id}/students", func(r chi.Router) {
		r.Get("/", handler.ListStudents)
		r.Post("/", handler.AddStudent)
		r.Post("/import", handler.ImportCSV)
	})
	return r, students
}

func importRequest(t *testing.T, csv, mode string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "roster.csv")
	if err != nil {
		t.Fatalf("creating form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("writing form file: %v", err)
	}
	if mode != "" {
		if err := writer.WriteField("mode", mode); err != nil {
			t.Fatalf("writing mode field: %v", err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_1/students/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportCSVReplace(t *testing.T) {
	router, students := newStudentRouter()

	if err := students.ReplaceAll("proj_1", []models.Student{{ID: "old"}}); err != nil {
		t.Fatalf("seeding roster: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, importRequest(t, "Prénom,Nom,Classe\nAlice,Martin,CE1\nBob,Durand,CE2\n", "replace"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Imported int    `json:"imported"`
		Added    int    `json:"added"`
		Mode     string `json:"mode"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Imported != 2 || resp.Added != 2 || resp.Mode != "replace" {
		t.Errorf("response = %+v", resp)
	}

	roster, err := students.ListByProject("proj_1")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(roster) != 2 {
		t.Errorf("roster size = %d, want 2 (old roster replaced)", len(roster))
	}
	for _, s := range roster {
		if s.ID == "old" {
			t.Error("replace mode kept the previous roster")
		}
	}
}

func TestImportCSVAppend(t *testing.T) {
	router, students := newStudentRouter()

	if err := students.ReplaceAll("proj_1", []models.Student{
		{ID: "old", FirstName: "Existing", LastName: "Student", ClassName: "CE1"},
	}); err != nil {
		t.Fatalf("seeding roster: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, importRequest(t, "Prénom,Nom,Classe\nAlice,Martin,CE1\n", "append"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	roster, err := students.ListByProject("proj_1")
	if err != nil {
		t.Fatalf("ListByProject() error = %v", err)
	}
	if len(roster) != 2 || roster[0].ID != "old" {
		t.Errorf("append mode roster = %+v", roster)
	}
}

func TestImportCSVErrors(t *testing.T) {
	tests := []struct {
		name       string
		csv        string
		mode       string
		wantStatus int
	}{
		{
			name:       "missing columns",
			csv:        "first,last\nAlice,Martin\n",
			mode:       "replace",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "header only",
			csv:        "Prénom,Nom,Classe\n",
			mode:       "replace",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown mode",
			csv:        "Prénom,Nom,Classe\nAlice,Martin,CE1\n",
			mode:       "merge",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, students := newStudentRouter()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, importRequest(t, tt.csv, tt.mode))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			roster, _ := students.ListByProject("proj_1")
			if len(roster) != 0 {
				t.Errorf("failed import changed the roster: %+v", roster)
			}
		})
	}
}

func TestAddStudentValidation(t *testing.T) {
	router, _ := newStudentRouter()

	body := strings.NewReader(`{"firstName":"  ","lastName":"Martin","className":"CE1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_1/students", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for blank first name", rec.Code)
	}
}

func TestAddAndListStudents(t *testing.T) {
	router, _ := newStudentRouter()

	body := strings.NewReader(`{"firstName":"Alice","lastName":"Martin","className":"CE1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/projects/proj_1/students", body)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/proj_1/students", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var roster []models.Student
	if err := json.NewDecoder(rec.Body).Decode(&roster); err != nil {
		t.Fatalf("decoding roster: %v", err)
	}
	if len(roster) != 1 || roster[0].FirstName != "Alice" {
		t.Errorf("roster = %+v", roster)
	}
}
