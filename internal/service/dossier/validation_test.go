package dossier

import (
	"testing"
)

func TestStringValue(t *testing.T) {
	title := "Thèse"
	var missing *string

	tests := []struct {
		name   string
		value  interface{}
		want   string
		wantOK bool
	}{
		{"plain string", "Appui", "Appui", true},
		{"string pointer", &title, "Thèse", true},
		{"nil pointer", missing, "", false},
		{"not a string", 42, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stringValue(tt.value)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("stringValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValidators(t *testing.T) {
	blank := "   "
	status := "ARCHIVE"
	badType := "THESE"
	var missing *string

	tests := []struct {
		name    string
		rule    func(interface{}) error
		value   interface{}
		wantErr bool
	}{
		{"notBlank rejects whitespace", notBlank, "  ", true},
		{"notBlank rejects whitespace pointer", notBlank, &blank, true},
		{"notBlank allows nil pointer", notBlank, missing, false},
		{"notBlank allows empty", notBlank, "", false},
		{"validStatus accepts pointer", validStatus, &status, false},
		{"validStatus rejects unknown", validStatus, "FERME", true},
		{"validArgumentType accepts code", validArgumentType, "REFUTATION", false},
		{"validArgumentType rejects pointer to unknown", validArgumentType, &badType, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
