package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

// readDocxPart extracts one part of a rendered DOCX archive
func readDocxPart(t *testing.T, data []byte, name string) string {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		return string(content)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestDocxRenderer_Parts(t *testing.T) {
	data, err := NewDocxRenderer().Render(sampleDossier())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("not a zip archive: %v", err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml", "docProps/core.xml"} {
		if !names[want] {
			t.Errorf("missing part %s", want)
		}
	}
}

func TestDocxRenderer_Document(t *testing.T) {
	data, err := NewDocxRenderer().Render(sampleDossier())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := readDocxPart(t, data, "word/document.xml")

	for _, want := range []string{
		"ARGUMINDS",
		"Affaire Martin",
		"Exporté le 16 octobre 2026",
		"1 [Principal] ",
		"Le bail est nul",
		"1.1 [Support] ",
		"1.2 [Objection] ",
		"Attestation, Photo",
		strings.Repeat("x", 150) + "…",
		"https://example.com/a",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}

	// Children are indented one level deeper than their parent
	if !strings.Contains(doc, `<w:ind w:left="400">`) {
		t.Error("expected level 1 indentation")
	}
	if strings.Contains(doc, strings.Repeat("x", 151)) {
		t.Error("excerpt was not truncated")
	}
	// Heading order follows the depth-first walk
	if strings.Index(doc, "1.1 [Support]") > strings.Index(doc, "1.2 [Objection]") {
		t.Error("children out of order")
	}
}

func TestDocxRenderer_EscapesMarkup(t *testing.T) {
	d := sampleDossier()
	d.Case.Title = "A & B <script>"
	d.Arguments[0].Content = "ligne 1\nligne 2"

	data, err := NewDocxRenderer().Render(d)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := readDocxPart(t, data, "word/document.xml")

	if strings.Contains(doc, "<script>") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(doc, "A &amp; B &lt;script&gt;") {
		t.Error("escaped title not found")
	}
	if !strings.Contains(doc, "ligne 1</w:t><w:br>") {
		t.Error("newline should become a line break")
	}

	core := readDocxPart(t, data, "docProps/core.xml")
	if !strings.Contains(core, "A &amp; B") {
		t.Errorf("core properties title not escaped: %s", core)
	}
}

func TestDocxRenderer_PageAndFont(t *testing.T) {
	data, err := NewDocxRenderer().Render(sampleDossier())
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := readDocxPart(t, data, "word/document.xml")

	if !strings.Contains(doc, `<w:pgSz w:w="11906" w:h="16838">`) {
		t.Error("expected an A4 portrait section")
	}
	if !strings.Contains(doc, docxFont) {
		t.Errorf("runs should use %s", docxFont)
	}
	if strings.Count(doc, "<w:tbl>") != 1 {
		t.Error("expected exactly one source table")
	}
}

func TestDocxRenderer_UsesPrebuiltForest(t *testing.T) {
	d := sampleDossier()
	forest := BuildTree([]ArgumentRecord{{ID: "z", Title: "Arbre fourni", Type: TypeRefutation}})
	d.Forest = &forest

	data, err := NewDocxRenderer().Render(d)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := readDocxPart(t, data, "word/document.xml")

	if !strings.Contains(doc, "Arbre fourni") {
		t.Error("prebuilt forest was not rendered")
	}
	if strings.Contains(doc, "Le bail est nul") {
		t.Error("arguments were rebuilt instead of using the prebuilt forest")
	}
}

func TestDocxRenderer_EmptyDossier(t *testing.T) {
	d := &Dossier{Case: CaseMetadata{Title: "Vide", Status: StatusDone}, GeneratedAt: testGeneratedAt}

	data, err := NewDocxRenderer().Render(d)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := readDocxPart(t, data, "word/document.xml")

	if !strings.Contains(doc, NoArgumentsText) {
		t.Error("missing empty arguments placeholder")
	}
	if !strings.Contains(doc, NoSourcesText) {
		t.Error("missing empty sources placeholder")
	}
	if strings.Contains(doc, "<w:tbl>") {
		t.Error("no table expected without sources")
	}
}

func TestDocxRenderer_Format(t *testing.T) {
	if got := NewDocxRenderer().Format(); got != FormatDOCX {
		t.Errorf("Format() = %+v", got)
	}
}
