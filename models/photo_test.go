package models

import "testing"

func TestPhotoID(t *testing.T) {
	got := PhotoID("s1", "proj_1", 1747300000000)
	want := "s1_proj_1_1747300000000"
	if got != want {
		t.Errorf("PhotoID() = %q, want %q", got, want)
	}
}

func TestPhotoFileName(t *testing.T) {
	tests := []struct {
		name     string
		student  Student
		sequence int
		want     string
	}{
		{
			name:     "plain class",
			student:  Student{FirstName: "Alice", LastName: "Martin", ClassName: "CE1"},
			sequence: 1,
			want:     "CE1_Martin_Alice_1.jpg",
		},
		{
			name:     "class with spaces",
			student:  Student{FirstName: "Bob", LastName: "Durand", ClassName: "CE1 A"},
			sequence: 2,
			want:     "CE1-A_Durand_Bob_2.jpg",
		},
		{
			name:     "multiple spaces collapse",
			student:  Student{FirstName: "Chloé", LastName: "Petit", ClassName: "Grande  Section"},
			sequence: 10,
			want:     "Grande-Section_Petit_Chloé_10.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhotoFileName(tt.student, tt.sequence); got != tt.want {
				t.Errorf("PhotoFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}
