package export

import (
	"strings"
	"unicode"
)

// Brand is the product name stamped on every export
const Brand = "ARGUMINDS"

// MaxFilenameLength caps the sanitized title part of an export filename
const MaxFilenameLength = 50

const accentedLetters = "àâäéèêëïîôùûüÿçÀÂÄÉÈÊËÏÎÔÙÛÜŸÇ"

// SanitizeFilename keeps ASCII letters and digits, French accented letters
// and whitespace, turns each whitespace run into a single underscore and truncates
// the result to MaxFilenameLength runes.
func SanitizeFilename(title string) string {
	out := make([]rune, 0, len(title))
	inSpace := false
	for _, r := range title {
		if !isFilenameRune(r) {
			continue
		}
		if unicode.IsSpace(r) {
			if !inSpace {
				out = append(out, '_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		out = append(out, r)
	}

	if len(out) > MaxFilenameLength {
		out = out[:MaxFilenameLength]
	}
	return string(out)
}

func isFilenameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(accentedLetters, r)
}

// Filename builds the attachment name of an export, e.g. ARGUMINDS_Mon_dossier.pdf
func Filename(title, ext string) string {
	return Brand + "_" + SanitizeFilename(title) + "." + strings.TrimPrefix(ext, ".")
}
