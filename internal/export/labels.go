package export

import "strings"

var typeLabels = map[string]string{
	TypePrincipal:  "Principal",
	TypeSupport:    "Support",
	TypeObjection:  "Objection",
	TypeRefutation: "Réfutation",
}

var statusLabels = map[string]string{
	StatusInProgress: "En cours",
	StatusDone:       "Terminé",
	StatusArchived:   "Archivé",
}

// Accent colors per argument type (RRGGBB)
var typeColors = map[string]string{
	TypePrincipal:  "4338CA",
	TypeSupport:    "16A34A",
	TypeObjection:  "DC2626",
	TypeRefutation: "6B7280",
}

const defaultTypeColor = "6B7280"

// ArgumentTypes lists the known argument type codes in display order
var ArgumentTypes = []string{TypePrincipal, TypeSupport, TypeObjection, TypeRefutation}

// Statuses lists the known case status codes in display order
var Statuses = []string{StatusInProgress, StatusDone, StatusArchived}

// TypeLabel returns the display label of an argument type code.
// Unknown codes are returned as is.
func TypeLabel(code string) string {
	if label, ok := typeLabels[code]; ok {
		return label
	}
	return code
}

// StatusLabel returns the display label of a case status code.
// Unknown codes are returned as is.
func StatusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// IsArgumentType reports whether code is a known argument type
func IsArgumentType(code string) bool {
	_, ok := typeLabels[code]
	return ok
}

// IsStatus reports whether code is a known case status
func IsStatus(code string) bool {
	_, ok := statusLabels[code]
	return ok
}

// TypeColor returns the "#RRGGBB" accent of an argument type
func TypeColor(code string) string {
	return "#" + typeColor(code)
}

func typeColor(code string) string {
	if c, ok := typeColors[code]; ok {
		return c
	}
	return defaultTypeColor
}

var asciiFolder = strings.NewReplacer(
	"…", "...",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"—", " - ",
	"–", "-",
)

// ASCIIFold replaces typographic punctuation the PDF core fonts cannot draw
// (ellipsis, curly quotes, em and en dashes) with plain ASCII. Everything
// else is left untouched.
func ASCIIFold(text string) string {
	return asciiFolder.Replace(text)
}

// excerpt truncates s to max runes, appending ellipsis when cut
func excerpt(s string, max int, ellipsis string) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + ellipsis
}
