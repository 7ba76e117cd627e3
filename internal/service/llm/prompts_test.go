package llm

import (
	"strings"
	"testing"

	"arguminds/internal/domain/models/dossier"
)

func strPtr(s string) *string { return &s }

func TestLoadPromptCatalog(t *testing.T) {
	catalog, err := LoadPromptCatalog()
	if err != nil {
		t.Fatalf("LoadPromptCatalog() error: %v", err)
	}

	if !strings.Contains(catalog.System, "JSON valide") {
		t.Errorf("system prompt = %q", catalog.System)
	}

	wantKeys := map[string]string{
		dossier.ActionAnalyze:     `"weight"`,
		dossier.ActionSuggest:     `"suggestions"`,
		dossier.ActionReformulate: `"reformulated"`,
	}
	for action, key := range wantKeys {
		prompt, err := catalog.Render(action, "CONTEXTE")
		if err != nil {
			t.Fatalf("Render(%s) error: %v", action, err)
		}
		if !strings.Contains(prompt, "CONTEXTE") {
			t.Errorf("Render(%s) lost the context", action)
		}
		if strings.Contains(prompt, contextPlaceholder) {
			t.Errorf("Render(%s) left the placeholder", action)
		}
		if !strings.Contains(prompt, key) {
			t.Errorf("Render(%s) missing %s", action, key)
		}
	}
}

func TestParsePromptCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "system: [unterminated"},
		{"no system prompt", "actions:\n  analyze: '{{context}}'\n"},
		{"missing action", "system: s\nactions:\n  analyze: '{{context}}'\n  suggest: '{{context}}'\n"},
		{"missing placeholder", "system: s\nactions:\n  analyze: x\n  suggest: '{{context}}'\n  reformulate: '{{context}}'\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePromptCatalog([]byte(tt.yaml)); err == nil {
				t.Error("ParsePromptCatalog() expected error")
			}
		})
	}
}

func TestPromptCatalog_RenderUnknownAction(t *testing.T) {
	catalog, err := LoadPromptCatalog()
	if err != nil {
		t.Fatalf("LoadPromptCatalog() error: %v", err)
	}
	if _, err := catalog.Render("summarize", "x"); err == nil {
		t.Error("Render(summarize) expected error")
	}
}

func TestArgumentContext_String(t *testing.T) {
	arg := &dossier.Argument{
		Title:   "Le bail est nul",
		Type:    "PRINCIPAL",
		Content: "Absence de signature.",
	}

	got := ArgumentContext{Argument: arg}.String()
	want := "Titre : Le bail est nul\nType : Principal\nContenu : Absence de signature."
	if got != want {
		t.Errorf("context =\n%q\nwant\n%q", got, want)
	}

	arg.Sources = []dossier.SourceRef{
		{ID: "s1", Title: "Code civil", URL: strPtr("https://legifrance.gouv.fr")},
		{ID: "s2", Title: "Attestation"},
	}
	parent := &dossier.Argument{Title: "Demande", Content: "Annulation du bail"}

	got = ArgumentContext{Argument: arg, Parent: parent}.String()
	for _, part := range []string{
		"\nSources liées : Code civil (https://legifrance.gouv.fr), Attestation",
		"\nArgument parent : Demande — Annulation du bail",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("context missing %q:\n%s", part, got)
		}
	}
}
