package utils

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatFrenchDate renders a date the way the UI displays it: "15 mai 2025"
func FormatFrenchDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// ParseSessionDate parses the YYYY-MM-DD session date stored in the active
// project pointer
func ParseSessionDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
