package export

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// Word measures: twips for spacing/indent/page, points for font sizes
const (
	docxIndentPerLevel = 400
	docxBodyIndent     = 200
	docxFont           = "Calibri"
	docxHeadingColor   = "4338CA"
	docxMutedColor     = "888888"
	docxCorePart       = "docProps/core.xml"
)

// docxColumnWidths are the source table column widths in twips (title, URL, excerpt)
var docxColumnWidths = [3]int{3000, 4000, 4000}

// DocxRenderer writes dossiers as Office Open XML word-processing documents
type DocxRenderer struct{}

// NewDocxRenderer creates a DOCX renderer
func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Format implements Renderer
func (r *DocxRenderer) Format() Format {
	return FormatDOCX
}

// Render implements Renderer
func (r *DocxRenderer) Render(d *Dossier) ([]byte, error) {
	generatedAt := d.generatedAt()
	blocks := Outline(d.forest(), d.Sources, d.Case, generatedAt)

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create docx document: %w", err)
	}
	setA4(doc)

	for _, block := range blocks {
		addBlock(doc, block)
	}
	doc.FileMap.Store(docxCorePart, []byte(coreProperties(d.Case.Title, generatedAt)))

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("write docx document: %w", err)
	}
	return buf.Bytes(), nil
}

type docxRun struct {
	text   string
	bold   bool
	italic bool
	color  string
	size   uint64 // points
}

type docxParagraph struct {
	style  string
	center bool
	before uint64
	after  uint64
	indent int
	runs   []docxRun
}

func addBlock(doc *docx.RootDoc, block Block) {
	switch block.Kind {
	case BlockBrand:
		addParagraph(doc, docxParagraph{center: true, after: 200, runs: []docxRun{
			{text: block.Text, bold: true, size: 18, color: docxHeadingColor},
		}})
	case BlockCaseTitle:
		addParagraph(doc, docxParagraph{style: "Heading1", center: true, after: 100, runs: []docxRun{
			{text: block.Text, size: 16},
		}})
	case BlockExportDate:
		addParagraph(doc, docxParagraph{center: true, after: 400, runs: []docxRun{
			{text: block.Text, size: 10, color: docxMutedColor},
		}})
	case BlockSectionHeading:
		addParagraph(doc, docxParagraph{style: "Heading2", before: 400, after: 200, runs: []docxRun{
			{text: block.Text, bold: true, size: 13, color: "333333"},
		}})
	case BlockInfo:
		var runs []docxRun
		for i, field := range block.Fields {
			label := field.Label + " : "
			if i > 0 {
				label = "    " + label
			}
			runs = append(runs,
				docxRun{text: label, bold: true, size: 10},
				docxRun{text: field.Value, size: 10},
			)
		}
		addParagraph(doc, docxParagraph{after: 80, runs: runs})
	case BlockDescription:
		addParagraph(doc, docxParagraph{after: 100, runs: []docxRun{
			{text: block.Text, size: 10, color: "555555"},
		}})
	case BlockDates:
		addParagraph(doc, docxParagraph{after: 80, runs: []docxRun{
			{text: block.Text, size: 9, color: docxMutedColor},
		}})
	case BlockArgumentHeading:
		addParagraph(doc, docxParagraph{before: 200, after: 80, indent: block.Level * docxIndentPerLevel, runs: []docxRun{
			{text: block.Counter + " [" + block.Label + "] ", bold: true, size: 11, color: typeColor(block.TypeCode)},
			{text: block.Text, bold: true, size: 11},
		}})
	case BlockArgumentBody:
		addParagraph(doc, docxParagraph{after: 60, indent: block.Level*docxIndentPerLevel + docxBodyIndent, runs: []docxRun{
			{text: block.Text, size: 10, color: "444444"},
		}})
	case BlockArgumentSources:
		addParagraph(doc, docxParagraph{after: 100, indent: block.Level*docxIndentPerLevel + docxBodyIndent, runs: []docxRun{
			{text: "Sources : ", bold: true, size: 9, color: "666666"},
			{text: block.Text, italic: true, size: 9, color: "666666"},
		}})
	case BlockPlaceholder:
		addParagraph(doc, docxParagraph{before: 100, runs: []docxRun{
			{text: block.Text, italic: true, size: 10, color: docxMutedColor},
		}})
	case BlockSourceTable:
		addSourceTable(doc, block.Rows)
	case BlockFooter:
		addParagraph(doc, docxParagraph{center: true, before: 600, runs: []docxRun{
			{text: block.Text, italic: true, size: 8, color: "AAAAAA"},
		}})
	}
}

func addParagraph(doc *docx.RootDoc, spec docxParagraph) {
	formatParagraph(doc.AddEmptyParagraph(), spec)
}

func formatParagraph(p *docx.Paragraph, spec docxParagraph) {
	if spec.style != "" {
		p.Style(spec.style)
	}
	if spec.before > 0 || spec.after > 0 {
		p.Spacing(spec.before, spec.after)
	}
	if spec.indent > 0 {
		left := spec.indent
		p.Indent(&ctypes.Indent{Left: &left})
	}
	if spec.center {
		p.Justification(stypes.JustificationCenter)
	}
	for _, run := range spec.runs {
		addRuns(p, run)
	}
}

// addRuns writes one styled run per line; line breaks become explicit breaks
func addRuns(p *docx.Paragraph, spec docxRun) {
	lines := strings.Split(spec.text, "\n")
	for i, line := range lines {
		run := p.AddText(line).Font(docxFont)
		if spec.bold {
			run.Bold(true)
		}
		if spec.italic {
			run.Italic(true)
		}
		if spec.color != "" {
			run.Color(spec.color)
		}
		if spec.size > 0 {
			run.Size(spec.size)
		}
		if i < len(lines)-1 {
			run.AddBreak(nil)
		}
	}
}

func addSourceTable(doc *docx.RootDoc, rows []SourceRow) {
	table := doc.AddTable()
	table.Width(5000, stypes.TableWidthPct)
	table.Grid(uint64(docxColumnWidths[0]), uint64(docxColumnWidths[1]), uint64(docxColumnWidths[2]))

	headerBorders := cellBorders(border(stypes.BorderStyleSingle, "CCCCCC", 4), border(stypes.BorderStyleSingle, docxHeadingColor, 8))
	addTableRow(table, headerBorders, [3]docxRun{
		{text: "Titre", bold: true, size: 10},
		{text: "URL", bold: true, size: 10},
		{text: "Extrait", bold: true, size: 10},
	})

	rowBorders := cellBorders(border(stypes.BorderStyleNil, "", 0), border(stypes.BorderStyleSingle, "EEEEEE", 4))
	for _, row := range rows {
		addTableRow(table, rowBorders, [3]docxRun{
			{text: row.Title, size: 9},
			{text: row.URL, size: 9, color: docxHeadingColor},
			{text: row.Excerpt, italic: true, size: 9, color: "666666"},
		})
	}

	// Word requires a paragraph between a table and what follows
	doc.AddEmptyParagraph()
}

func addTableRow(table *docx.Table, borders *ctypes.CellBorders, cells [3]docxRun) {
	row := table.AddRow()
	for i, spec := range cells {
		cell := row.AddCell().Width(docxColumnWidths[i], stypes.TableWidthDxa)
		cell.Borders(borders.Top, borders.Left, borders.Bottom, borders.Right, nil, nil, nil, nil)
		formatParagraph(cell.AddEmptyPara(), docxParagraph{runs: []docxRun{spec}})
	}
}

// cellBorders draws only horizontal rules
func cellBorders(top, bottom *ctypes.Border) *ctypes.CellBorders {
	return &ctypes.CellBorders{
		Top:    top,
		Left:   border(stypes.BorderStyleNil, "", 0),
		Bottom: bottom,
		Right:  border(stypes.BorderStyleNil, "", 0),
	}
}

func border(style stypes.BorderStyle, color string, size int) *ctypes.Border {
	b := &ctypes.Border{Val: style}
	if color != "" {
		b.Color = &color
	}
	if size > 0 {
		b.Size = &size
	}
	return b
}

// setA4 switches the template's Letter section to A4 portrait
func setA4(doc *docx.RootDoc) {
	body := doc.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}

	width, height := uint64(11906), uint64(16838)
	vertical, horizontal, header, gutter := 1000, 1200, 708, 0
	body.SectPr.PageSize = &ctypes.PageSize{Width: &width, Height: &height}
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top:    &vertical,
		Bottom: &vertical,
		Left:   &horizontal,
		Right:  &horizontal,
		Header: &header,
		Footer: &header,
		Gutter: &gutter,
	}
}

func coreProperties(title string, created time.Time) string {
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(title))
	stamp := created.UTC().Format(time.RFC3339)
	return xml.Header + `<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escaped.String() + `</dc:title>` +
		`<dc:creator>` + Brand + `</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}
