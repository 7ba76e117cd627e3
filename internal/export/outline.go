package export

import (
	"strings"
	"time"
)

// BlockKind identifies what a Block represents in a rendered dossier
type BlockKind int

const (
	BlockBrand BlockKind = iota
	BlockCaseTitle
	BlockExportDate
	BlockSectionHeading
	BlockInfo
	BlockDescription
	BlockDates
	BlockArgumentHeading
	BlockArgumentBody
	BlockArgumentSources
	BlockPlaceholder
	BlockSourceTable
	BlockFooter
)

// Placeholder texts for empty sections
const (
	NoArgumentsText = "Aucun argument."
	NoSourcesText   = "Aucune source."
	missingValue    = "—"
)

// docxExcerptLength is the rune budget of a source excerpt in the outline table
const docxExcerptLength = 150

// Field is a label/value pair of an info block
type Field struct {
	Label string
	Value string
}

// SourceRow is one row of the source table
type SourceRow struct {
	Title   string
	URL     string
	Excerpt string
}

// Block is one formatted unit of a rich-text dossier.
// Only the fields relevant to Kind are set.
type Block struct {
	Kind BlockKind
	Text string

	// Argument blocks
	Counter  string
	Level    int
	TypeCode string
	Label    string

	// Info blocks
	Fields []Field

	// Source table
	Rows []SourceRow
}

// Outline walks the forest depth-first and lays out the whole dossier as a
// flat sequence of blocks: title page, informations, numbered arguments and
// the source table.
func Outline(forest Forest, sources []SourceRecord, meta CaseMetadata, generatedAt time.Time) []Block {
	exportDate := longDate(generatedAt)

	blocks := []Block{
		{Kind: BlockBrand, Text: Brand},
		{Kind: BlockCaseTitle, Text: meta.Title},
		{Kind: BlockExportDate, Text: "Exporté le " + exportDate},
		{Kind: BlockSectionHeading, Text: "Informations"},
		{Kind: BlockInfo, Fields: []Field{
			{Label: "Type", Value: valueOr(meta.Type, "Non défini")},
			{Label: "Statut", Value: StatusLabel(meta.Status)},
		}},
	}
	if meta.Description != nil && strings.TrimSpace(*meta.Description) != "" {
		blocks = append(blocks, Block{Kind: BlockDescription, Text: *meta.Description})
	}
	if !meta.CreatedAt.IsZero() {
		blocks = append(blocks, Block{
			Kind: BlockDates,
			Text: "Créé le " + shortDate(meta.CreatedAt) + "  —  Modifié le " + shortDate(meta.UpdatedAt),
		})
	}

	blocks = append(blocks, Block{Kind: BlockSectionHeading, Text: "Arguments"})
	blocks = append(blocks, ArgumentBlocks(forest)...)

	blocks = append(blocks, Block{Kind: BlockSectionHeading, Text: "Sources"})
	if len(sources) == 0 {
		blocks = append(blocks, Block{Kind: BlockPlaceholder, Text: NoSourcesText})
	} else {
		blocks = append(blocks, Block{Kind: BlockSourceTable, Rows: SourceRows(sources, docxExcerptLength, "…")})
	}

	blocks = append(blocks, Block{Kind: BlockFooter, Text: "Généré par " + Brand + " — " + exportDate})
	return blocks
}

// ArgumentBlocks renders the argument section: per node a heading, its body
// when non-empty and a sources summary when it cites any, followed by its
// children one level deeper.
func ArgumentBlocks(forest Forest) []Block {
	if len(forest.Roots) == 0 {
		return []Block{{Kind: BlockPlaceholder, Text: NoArgumentsText}}
	}

	var blocks []Block
	forest.Walk(func(node *TreeNode, counter string, depth int) {
		blocks = append(blocks, Block{
			Kind:     BlockArgumentHeading,
			Text:     node.Title,
			Counter:  counter,
			Level:    depth,
			TypeCode: node.Type,
			Label:    TypeLabel(node.Type),
		})
		if node.Content != "" {
			blocks = append(blocks, Block{Kind: BlockArgumentBody, Text: node.Content, Level: depth})
		}
		if len(node.Sources) > 0 {
			blocks = append(blocks, Block{Kind: BlockArgumentSources, Text: sourceTitles(node.Sources), Level: depth})
		}
	})
	return blocks
}

// SourceRows flattens sources into table rows, truncating excerpts to
// excerptLen runes. Missing values become a dash.
func SourceRows(sources []SourceRecord, excerptLen int, ellipsis string) []SourceRow {
	rows := make([]SourceRow, 0, len(sources))
	for _, s := range sources {
		row := SourceRow{Title: s.Title, URL: valueOr(s.URL, missingValue), Excerpt: missingValue}
		if s.Content != nil && *s.Content != "" {
			row.Excerpt = excerpt(*s.Content, excerptLen, ellipsis)
		}
		rows = append(rows, row)
	}
	return rows
}

func sourceTitles(refs []SourceRef) string {
	titles := make([]string, len(refs))
	for i, ref := range refs {
		titles[i] = ref.Title
	}
	return strings.Join(titles, ", ")
}

func valueOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// headingText is the "1.2 [Support] Title" line shared by both renderers
func headingText(counter, label, title string) string {
	return counter + " [" + label + "] " + title
}
