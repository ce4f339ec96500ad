package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestClassCreateAndList(t *testing.T) {
	repo := NewClassRepository(newTestStore())

	created, err := repo.Create("CE1 A")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !strings.HasPrefix(created.ID, "class_") {
		t.Errorf("class ID %q lacks prefix", created.ID)
	}

	classes, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(classes) != 1 || classes[0].Name != "CE1 A" {
		t.Errorf("List() = %+v", classes)
	}
}

func TestClassDuplicateNameCaseInsensitive(t *testing.T) {
	repo := NewClassRepository(newTestStore())

	if _, err := repo.Create("CE1 A"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	tests := []string{"CE1 A", "ce1 a", "Ce1 A"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Create(name)
			if !errors.Is(err, ErrDuplicateClassName) {
				t.Errorf("Create(%q) error = %v, want ErrDuplicateClassName", name, err)
			}
		})
	}

	classes, _ := repo.List()
	if len(classes) != 1 {
		t.Errorf("duplicate attempts changed the list: %+v", classes)
	}
}
