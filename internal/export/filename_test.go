package export

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Mon dossier", "Mon_dossier"},
		{"accents kept", "Procès Dupré", "Procès_Dupré"},
		{"punctuation dropped", "Affaire n°12: l'appel!", "Affaire_n12_lappel"},
		{"space runs collapse", "a   b", "a_b"},
		{"leading and trailing spaces", " a b ", "_a_b_"},
		{"slashes removed", "../../etc/passwd", "etcpasswd"},
		{"tabs and newlines collapse", "Dossier\tPénal\n\nAppel", "Dossier_Pénal_Appel"},
		{"path and markup characters", "Dossier: Test/Pénal <2024>", "Dossier_TestPénal_2024"},
		{"empty title", "", ""},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.title); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	got := SanitizeFilename(strings.Repeat("é", 80))

	if n := utf8.RuneCountInString(got); n != MaxFilenameLength {
		t.Errorf("rune count = %d, want %d", n, MaxFilenameLength)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a rune")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		ext   string
		want  string
	}{
		{"Mon dossier", "pdf", "ARGUMINDS_Mon_dossier.pdf"},
		{"Mon dossier", ".docx", "ARGUMINDS_Mon_dossier.docx"},
		{"", "pdf", "ARGUMINDS_.pdf"},
	}

	for _, tt := range tests {
		if got := Filename(tt.title, tt.ext); got != tt.want {
			t.Errorf("Filename(%q, %q) = %q, want %q", tt.title, tt.ext, got, tt.want)
		}
	}
}
