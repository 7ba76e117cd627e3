package export

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres (A4 portrait)
const (
	pdfPageWidth    = 210.0
	pdfPageHeight   = 297.0
	pdfMargin       = 20.0
	pdfContentWidth = pdfPageWidth - 2*pdfMargin
	pdfLineHeight   = 6.0
	pdfFooterHeight = 15.0
	pdfIndentStep   = 8.0
	pdfMaxImageH    = 120.0

	pdfExcerptLength = 200
	pdfFont          = "Helvetica"
	pdfGraphImage    = "graph"
)

// Source table column widths (#, title, URL, excerpt); they add up to pdfContentWidth
var pdfColumnWidths = [4]float64{10, 50, 50, 60}

// PDFOptions tunes the paginated renderer
type PDFOptions struct {
	// PageHeight overrides the A4 page height (mm)
	PageHeight float64

	// DisableCompression leaves page streams readable, useful when inspecting output
	DisableCompression bool
}

// PDFRenderer lays dossiers out on fixed-size pages with explicit page breaks
// and a "Page i / N" footer on every page
type PDFRenderer struct {
	opts PDFOptions
}

// NewPDFRenderer creates a PDF renderer
func NewPDFRenderer(opts PDFOptions) *PDFRenderer {
	if opts.PageHeight <= 0 {
		opts.PageHeight = pdfPageHeight
	}
	return &PDFRenderer{opts: opts}
}

// Format implements Renderer
func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

// Render implements Renderer
func (r *PDFRenderer) Render(d *Dossier) ([]byte, error) {
	doc, err := r.build(d)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// build draws the whole document and stamps the footers, leaving output to the caller
func (r *PDFRenderer) build(d *Dossier) (*fpdf.Fpdf, error) {
	generatedAt := d.generatedAt()

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pdfPageWidth, Ht: r.opts.PageHeight},
	})
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(!r.opts.DisableCompression)
	doc.SetCreationDate(generatedAt)
	doc.SetTitle(d.Case.Title, true)
	doc.SetCreator(Brand, false)

	w := &pdfWriter{
		doc: doc,
		tr:  doc.UnicodeTranslatorFromDescriptor(""),
	}
	w.layout = newLayout(r.opts.PageHeight, pdfMargin, pdfFooterHeight, doc.AddPage)

	w.header(d.Case, longDate(generatedAt))
	w.informations(d.Case)
	if len(d.GraphImage) > 0 {
		if err := w.graph(d.GraphImage); err != nil {
			return nil, err
		}
	}
	w.arguments(d.forest())
	w.sources(d.Sources)
	w.footers()

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return doc, nil
}

// pdfWriter draws blocks onto the document through the layout cursor
type pdfWriter struct {
	doc    *fpdf.Fpdf
	tr     func(string) string
	layout *layout
}

func (w *pdfWriter) font(style string, size float64, gray int) {
	w.doc.SetFont(pdfFont, style, size)
	w.doc.SetTextColor(gray, gray, gray)
}

// lines folds, encodes and wraps text to the given width using the current font
func (w *pdfWriter) lines(text string, width float64) []string {
	encoded := w.tr(ASCIIFold(strings.ReplaceAll(text, "\r", "")))
	var out []string
	for _, line := range w.doc.SplitLines([]byte(encoded), width) {
		out = append(out, string(line))
	}
	return out
}

// paragraph writes wrapped lines at x, checking for a page break before each line
func (w *pdfWriter) paragraph(lines []string, x, step float64) {
	for _, line := range lines {
		w.layout.ensure(step)
		w.doc.Text(x, w.layout.y, line)
		w.layout.advance(step)
	}
}

func (w *pdfWriter) separator() {
	w.doc.SetDrawColor(200, 200, 200)
	w.doc.SetLineWidth(0.3)
	w.doc.Line(pdfMargin, w.layout.y, pdfPageWidth-pdfMargin, w.layout.y)
	w.layout.advance(8)
}

func (w *pdfWriter) sectionTitle(title string, keep float64) {
	w.layout.ensure(keep)
	w.font("B", 12, 30)
	w.doc.Text(pdfMargin, w.layout.y, w.tr(title))
	w.layout.advance(8)
}

func (w *pdfWriter) header(meta CaseMetadata, exportDate string) {
	w.doc.SetFont(pdfFont, "B", 20)
	w.doc.SetTextColor(55, 48, 163)
	w.doc.Text(pdfMargin, w.layout.y, Brand)
	w.layout.advance(10)

	w.font("B", 14, 30)
	w.paragraph(w.lines(meta.Title, pdfContentWidth), pdfMargin, 7)

	w.font("", 9, 120)
	w.paragraph([]string{w.tr("Exporté le " + exportDate)}, pdfMargin, 8)

	w.separator()
}

func (w *pdfWriter) informations(meta CaseMetadata) {
	w.sectionTitle("INFORMATIONS", 20)

	w.font("", 9, 60)
	parts := []string{}
	if meta.Type != nil && *meta.Type != "" {
		parts = append(parts, "Type : "+*meta.Type)
	}
	parts = append(parts, "Statut : "+StatusLabel(meta.Status))
	w.paragraph(w.lines(strings.Join(parts, "  |  "), pdfContentWidth), pdfMargin, 6)

	if !meta.CreatedAt.IsZero() {
		dates := "Créé le " + shortDate(meta.CreatedAt) + " - Modifié le " + shortDate(meta.UpdatedAt)
		w.paragraph(w.lines(dates, pdfContentWidth), pdfMargin, 6)
	}

	if meta.Description != nil && strings.TrimSpace(*meta.Description) != "" {
		w.paragraph(w.lines(*meta.Description, pdfContentWidth), pdfMargin, 5)
		w.layout.advance(4)
	}
	w.layout.advance(4)
}

func (w *pdfWriter) graph(data []byte) error {
	imageType, err := detectImageType(data)
	if err != nil {
		return err
	}

	options := fpdf.ImageOptions{ImageType: imageType}
	info := w.doc.RegisterImageOptionsReader(pdfGraphImage, options, bytes.NewReader(data))
	if err := w.doc.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if info == nil || info.Width() <= 0 || info.Height() <= 0 {
		return fmt.Errorf("%w: empty image", ErrUnsupportedImage)
	}

	w.sectionTitle("GRAPHE DES ARGUMENTS", 30)

	ratio := info.Width() / info.Height()
	imgW := pdfContentWidth
	imgH := imgW / ratio
	if imgH > pdfMaxImageH {
		imgH = pdfMaxImageH
		imgW = imgH * ratio
	}

	w.layout.ensure(imgH + 5)
	w.doc.ImageOptions(pdfGraphImage, pdfMargin, w.layout.y, imgW, imgH, false, options, 0, "")
	w.layout.advance(imgH + 8)
	return nil
}

func detectImageType(data []byte) (string, error) {
	switch contentType := http.DetectContentType(data); contentType {
	case "image/png":
		return "PNG", nil
	case "image/jpeg":
		return "JPG", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, contentType)
	}
}

func (w *pdfWriter) arguments(forest Forest) {
	w.sectionTitle("ARGUMENTS", 20)

	if len(forest.Roots) == 0 {
		w.font("", 9, 120)
		w.paragraph([]string{w.tr(NoArgumentsText)}, pdfMargin, 8)
		return
	}

	forest.Walk(w.argument)
}

func (w *pdfWriter) argument(node *TreeNode, counter string, depth int) {
	indent := pdfMargin + float64(depth)*pdfIndentStep
	width := pdfContentWidth - float64(depth)*pdfIndentStep

	w.font("B", 10, 50)
	heading := w.lines(headingText(counter, TypeLabel(node.Type), node.Title), width)
	// Keep the heading together with the first line of its body
	w.layout.ensure(float64(len(heading)+1) * pdfLineHeight)
	w.paragraph(heading, indent, pdfLineHeight)

	if node.Content != "" {
		w.font("", 9, 80)
		w.paragraph(w.lines(node.Content, width-4), indent+4, 5)
	}

	if len(node.Sources) > 0 {
		w.font("", 8, 100)
		w.paragraph(w.lines("Sources : "+sourceTitles(node.Sources), width-4), indent+4, 4)
		w.layout.advance(2)
	}

	w.layout.advance(4)
}

func (w *pdfWriter) sources(sources []SourceRecord) {
	w.layout.ensure(20)
	w.layout.advance(4)
	w.separator()
	w.sectionTitle("SOURCES", 20)

	if len(sources) == 0 {
		w.font("", 9, 120)
		w.paragraph([]string{w.tr(NoSourcesText)}, pdfMargin, 8)
		return
	}

	w.tableHeader()
	for i, row := range SourceRows(sources, pdfExcerptLength, "...") {
		w.font("", 8, 60)
		cells := [4][]string{
			{fmt.Sprintf("%d", i+1)},
			w.lines(row.Title, pdfColumnWidths[1]-2),
			w.lines(row.URL, pdfColumnWidths[2]-2),
			w.lines(row.Excerpt, pdfColumnWidths[3]-2),
		}
		rowLines := 1
		for _, cell := range cells {
			if len(cell) > rowLines {
				rowLines = len(cell)
			}
		}

		rowHeight := float64(rowLines)*4 + 2
		if w.layout.ensure(rowHeight) {
			w.tableHeader()
			w.font("", 8, 60)
		}

		x := pdfMargin
		for col, cell := range cells {
			if col == 2 {
				w.doc.SetTextColor(55, 48, 163)
			} else {
				w.doc.SetTextColor(60, 60, 60)
			}
			for j, line := range cell {
				w.doc.Text(x, w.layout.y+float64(j)*4, line)
			}
			x += pdfColumnWidths[col]
		}
		w.layout.advance(rowHeight)

		w.doc.SetDrawColor(229, 231, 235)
		w.doc.SetLineWidth(0.2)
		w.doc.Line(pdfMargin, w.layout.y-4, pdfPageWidth-pdfMargin, w.layout.y-4)
	}
}

func (w *pdfWriter) tableHeader() {
	w.layout.ensure(8)
	w.font("B", 8, 30)
	x := pdfMargin
	for i, title := range []string{"#", "Titre", "URL", "Extrait"} {
		w.doc.Text(x, w.layout.y, title)
		x += pdfColumnWidths[i]
	}
	w.doc.SetDrawColor(67, 56, 202)
	w.doc.SetLineWidth(0.4)
	w.doc.Line(pdfMargin, w.layout.y+2, pdfPageWidth-pdfMargin, w.layout.y+2)
	w.layout.advance(7)
}

// footers stamps every page once the page count is final
func (w *pdfWriter) footers() {
	total := w.doc.PageCount()
	label := w.tr("Généré par " + Brand)
	baseline := w.layout.pageHeight - 8

	for page := 1; page <= total; page++ {
		w.doc.SetPage(page)
		// Each page stream ends with whatever font it last used; select the
		// footer font twice so it is written into this page's stream.
		w.doc.SetFont(pdfFont, "B", 8)
		w.font("", 8, 150)

		number := fmt.Sprintf("Page %d / %d", page, total)
		w.doc.Text(pdfPageWidth-pdfMargin-w.doc.GetStringWidth(number), baseline, number)
		w.doc.Text(pdfMargin, baseline, label)
	}
}
