package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arguminds/internal/export"
)

const sampleYAML = `
case:
  title: Affaire Dupont / Martin
  type: Civil
  status: EN_COURS
  created_at: 2024-03-01T10:00:00Z
  updated_at: 2024-03-02T10:00:00Z
arguments:
  - id: a1
    title: Thèse
    content: Le contrat est nul.
    type: PRINCIPAL
  - id: a2
    title: Appui
    content: Absence de consentement.
    type: SUPPORT
    parent_id: a1
sources:
  - title: Code civil, art. 1128
    url: https://www.legifrance.gouv.fr
`

const sampleJSON = `{
  "case": {"title": "Motion", "status": "TERMINE"},
  "arguments": [{"id": "x", "title": "Seul", "content": "c", "type": "OBJECTION"}],
  "sources": []
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_AllFormats(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "case.yaml", sampleYAML)
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	if err := run([]string{"-in", in, "-out", out, "-no-color"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	tests := []struct {
		file   string
		prefix string
	}{
		{"ARGUMINDS_Affaire_Dupont_Martin.docx", "PK"},
		{"ARGUMINDS_Affaire_Dupont_Martin.pdf", "%PDF"},
	}
	for _, tt := range tests {
		data, err := os.ReadFile(filepath.Join(out, tt.file))
		if err != nil {
			t.Errorf("missing %s: %v", tt.file, err)
			continue
		}
		if !bytes.HasPrefix(data, []byte(tt.prefix)) {
			t.Errorf("%s does not start with %q", tt.file, tt.prefix)
		}
	}

	printed := stdout.String()
	for _, want := range []string{"Affaire Dupont / Martin", "1 [Principal] Thèse", "  1.1 [Support] Appui", "2 argument(s)", "1 source(s)"} {
		if !strings.Contains(printed, want) {
			t.Errorf("outline missing %q:\n%s", want, printed)
		}
	}
}

func TestRun_JSONSingleFormat(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "case.json", sampleJSON)

	var stdout bytes.Buffer
	if err := run([]string{"-in", in, "-out", dir, "-format", "PDF", "-no-color"}, &stdout); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ARGUMINDS_Motion.pdf")); err != nil {
		t.Errorf("pdf not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ARGUMINDS_Motion.docx")); err == nil {
		t.Error("docx written although only pdf was requested")
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "case.yaml", sampleYAML)
	untitled := writeFile(t, dir, "untitled.yaml", "case:\n  status: EN_COURS\n")
	unknownField := writeFile(t, dir, "extra.yaml", "case:\n  title: X\n  owner: bob\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing -in", []string{}, "-in is required"},
		{"unreadable file", []string{"-in", filepath.Join(dir, "nope.yaml")}, "read dossier"},
		{"no title", []string{"-in", untitled}, "case.title is required"},
		{"unknown field", []string{"-in", unknownField}, "parse extra.yaml"},
		{"unknown format", []string{"-in", good, "-format", "odt"}, "unknown export format"},
		{"missing graph", []string{"-in", good, "-graph", filepath.Join(dir, "graph.png")}, "read graph image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(append(tt.args, "-out", dir), &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestRenderOutline_PromotedCycle(t *testing.T) {
	a, b := "a", "b"
	d := &export.Dossier{
		Case: export.CaseMetadata{Title: "Boucle", Status: export.StatusDone},
		Arguments: []export.ArgumentRecord{
			{ID: "a", Title: "A", Type: export.TypeSupport, ParentID: &b},
			{ID: "b", Title: "B", Type: export.TypeObjection, ParentID: &a},
		},
	}
	got := renderOutline(d, export.BuildTree(d.Arguments), false)
	if !strings.Contains(got, "Terminé") {
		t.Errorf("status label missing:\n%s", got)
	}
	if !strings.Contains(got, "moved to the top level") {
		t.Errorf("promotion notice missing:\n%s", got)
	}
}
