package utils

import (
	"testing"
	"time"
)

func TestFormatFrenchDate(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"mid-year", time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC), "15 mai 2025"},
		{"accented month", time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), "1 décembre 2025"},
		{"august", time.Date(2024, time.August, 31, 0, 0, 0, 0, time.UTC), "31 août 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFrenchDate(tt.date); got != tt.want {
				t.Errorf("FormatFrenchDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseSessionDate(t *testing.T) {
	parsed, err := ParseSessionDate("2025-05-15")
	if err != nil {
		t.Fatalf("ParseSessionDate() error = %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.May || parsed.Day() != 15 {
		t.Errorf("ParseSessionDate() = %v", parsed)
	}

	if _, err := ParseSessionDate("15/05/2025"); err == nil {
		t.Error("ParseSessionDate() accepted a non-ISO date")
	}
}
