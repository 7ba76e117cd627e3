package export

import (
	"strings"
	"testing"
	"time"
)

var testGeneratedAt = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func sampleDossier() *Dossier {
	return &Dossier{
		Case: CaseMetadata{
			Title:       "Affaire Martin",
			Description: strPtr("Litige locatif"),
			Type:        strPtr("Civil"),
			Status:      StatusInProgress,
			CreatedAt:   time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2026, time.February, 7, 0, 0, 0, 0, time.UTC),
		},
		Arguments: []ArgumentRecord{
			{ID: "a1", Title: "Le bail est nul", Content: "Absence de signature", Type: TypePrincipal},
			{
				ID: "a2", Title: "Témoignage du voisin", Type: TypeSupport, ParentID: strPtr("a1"),
				Sources: []SourceRef{{ID: "s1", Title: "Attestation"}, {ID: "s2", Title: "Photo"}},
			},
			{ID: "a3", Title: "Le bail a été exécuté", Type: TypeObjection, ParentID: strPtr("a1")},
		},
		Sources: []SourceRecord{
			{Title: "Attestation", URL: strPtr("https://example.com/a"), Content: strPtr(strings.Repeat("x", 300))},
			{Title: "Photo"},
		},
		GeneratedAt: testGeneratedAt,
	}
}

func blocksOfKind(blocks []Block, kind BlockKind) []Block {
	var out []Block
	for _, b := range blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

func TestOutline_Header(t *testing.T) {
	d := sampleDossier()
	blocks := Outline(BuildTree(d.Arguments), d.Sources, d.Case, d.GeneratedAt)

	if blocks[0].Kind != BlockBrand || blocks[0].Text != Brand {
		t.Errorf("first block = %+v, want brand", blocks[0])
	}
	if blocks[1].Text != "Affaire Martin" {
		t.Errorf("title block = %q", blocks[1].Text)
	}
	if blocks[2].Text != "Exporté le 16 octobre 2026" {
		t.Errorf("export date block = %q", blocks[2].Text)
	}

	info := blocksOfKind(blocks, BlockInfo)
	if len(info) != 1 {
		t.Fatalf("info blocks = %d, want 1", len(info))
	}
	fields := info[0].Fields
	if fields[0].Value != "Civil" || fields[1].Value != "En cours" {
		t.Errorf("info fields = %+v", fields)
	}

	dates := blocksOfKind(blocks, BlockDates)
	if len(dates) != 1 || !strings.Contains(dates[0].Text, "05/01/2026") || !strings.Contains(dates[0].Text, "07/02/2026") {
		t.Errorf("dates block = %+v", dates)
	}

	last := blocks[len(blocks)-1]
	if last.Kind != BlockFooter || !strings.HasPrefix(last.Text, "Généré par ARGUMINDS") {
		t.Errorf("last block = %+v, want footer", last)
	}
}

func TestOutline_MissingCaseType(t *testing.T) {
	d := sampleDossier()
	d.Case.Type = nil
	d.Case.Description = nil

	blocks := Outline(BuildTree(d.Arguments), d.Sources, d.Case, d.GeneratedAt)

	if got := blocksOfKind(blocks, BlockInfo)[0].Fields[0].Value; got != "Non défini" {
		t.Errorf("type value = %q, want Non défini", got)
	}
	if n := len(blocksOfKind(blocks, BlockDescription)); n != 0 {
		t.Errorf("description blocks = %d, want 0", n)
	}
}

func TestArgumentBlocks(t *testing.T) {
	d := sampleDossier()
	blocks := ArgumentBlocks(BuildTree(d.Arguments))

	want := []struct {
		kind    BlockKind
		counter string
		level   int
	}{
		{BlockArgumentHeading, "1", 0},
		{BlockArgumentBody, "", 0},
		{BlockArgumentHeading, "1.1", 1},
		{BlockArgumentSources, "", 1},
		{BlockArgumentHeading, "1.2", 1},
	}

	if len(blocks) != len(want) {
		t.Fatalf("len(blocks) = %d, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i, w := range want {
		b := blocks[i]
		if b.Kind != w.kind || b.Counter != w.counter || b.Level != w.level {
			t.Errorf("blocks[%d] = {kind %d counter %q level %d}, want %+v", i, b.Kind, b.Counter, b.Level, w)
		}
	}

	if blocks[2].Label != "Support" || blocks[2].TypeCode != TypeSupport {
		t.Errorf("heading label = %q code = %q", blocks[2].Label, blocks[2].TypeCode)
	}
	if blocks[3].Text != "Attestation, Photo" {
		t.Errorf("sources summary = %q", blocks[3].Text)
	}
}

func TestArgumentBlocks_Counters(t *testing.T) {
	tests := []struct {
		name    string
		records []ArgumentRecord
		want    []string
	}{
		{
			name: "children under the second root",
			records: []ArgumentRecord{
				{ID: "r1", Title: "Un", Type: TypePrincipal},
				{ID: "r2", Title: "Deux", Type: TypePrincipal},
				{ID: "r3", Title: "Trois", Type: TypePrincipal},
				{ID: "c1", Title: "Deux A", Type: TypeSupport, ParentID: strPtr("r2")},
				{ID: "c2", Title: "Deux B", Type: TypeObjection, ParentID: strPtr("r2")},
			},
			want: []string{"1", "2", "2.1", "2.2", "3"},
		},
		{
			name: "grandchild",
			records: []ArgumentRecord{
				{ID: "r1", Title: "Un", Type: TypePrincipal},
				{ID: "c1", Title: "Un A", Type: TypeSupport, ParentID: strPtr("r1")},
				{ID: "g1", Title: "Un A i", Type: TypeRefutation, ParentID: strPtr("c1")},
				{ID: "r2", Title: "Deux", Type: TypePrincipal},
			},
			want: []string{"1", "1.1", "1.1.1", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, b := range blocksOfKind(ArgumentBlocks(BuildTree(tt.records)), BlockArgumentHeading) {
				got = append(got, b.Counter)
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("counters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArgumentBlocks_Empty(t *testing.T) {
	blocks := ArgumentBlocks(BuildTree(nil))

	if len(blocks) != 1 || blocks[0].Kind != BlockPlaceholder || blocks[0].Text != NoArgumentsText {
		t.Errorf("blocks = %+v, want a single placeholder", blocks)
	}
}

func TestOutline_NoSources(t *testing.T) {
	d := sampleDossier()
	blocks := Outline(BuildTree(d.Arguments), nil, d.Case, d.GeneratedAt)

	if n := len(blocksOfKind(blocks, BlockSourceTable)); n != 0 {
		t.Errorf("source tables = %d, want 0", n)
	}
	placeholders := blocksOfKind(blocks, BlockPlaceholder)
	if len(placeholders) != 1 || placeholders[0].Text != NoSourcesText {
		t.Errorf("placeholders = %+v", placeholders)
	}
}

func TestSourceRows(t *testing.T) {
	d := sampleDossier()
	rows := SourceRows(d.Sources, 150, "…")

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d", len(rows))
	}
	if rows[0].Excerpt != strings.Repeat("x", 150)+"…" {
		t.Errorf("excerpt = %q", rows[0].Excerpt)
	}
	if rows[0].URL != "https://example.com/a" {
		t.Errorf("url = %q", rows[0].URL)
	}
	if rows[1].URL != missingValue || rows[1].Excerpt != missingValue {
		t.Errorf("missing values = %+v", rows[1])
	}
}

func TestHeadingText(t *testing.T) {
	if got := headingText("2.1", "Objection", "Titre"); got != "2.1 [Objection] Titre" {
		t.Errorf("headingText() = %q", got)
	}
}
