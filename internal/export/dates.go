package export

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// longDate formats t as "16 octobre 2026"
func longDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// shortDate formats t as "16/10/2026"
func shortDate(t time.Time) string {
	return t.Format("02/01/2006")
}
