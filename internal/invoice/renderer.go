package invoice

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

// page geometry, in points
const (
	horizontalMargin = 25.0
	verticalMargin   = 72.0

	titleSize  = 22.0
	normalSize = 12.0
	smallSize  = 10.0

	gridLine    = 1.0
	cellPadding = 3.0
)

var (
	summaryWidths = []float64{pdfkit.MM(65), pdfkit.MM(65), pdfkit.MM(65)}
	itemWidths    = []float64{pdfkit.MM(65), pdfkit.MM(20), pdfkit.MM(20), pdfkit.MM(20), pdfkit.MM(40)}
	notesWidth    = pdfkit.MM(180)
	notesHeight   = pdfkit.MM(40)
)

// Renderer draws invoice documents as A4 PDFs
type Renderer struct {
	font   pdfkit.Font
	logger *zap.Logger
}

// NewRenderer creates a renderer that prints with font
func NewRenderer(font pdfkit.Font, logger *zap.Logger) *Renderer {
	return &Renderer{font: font, logger: logger}
}

// Render draws doc into memory and returns the PDF bytes. The fixed texts
// are Japanese, so a built-in font is rejected before anything is drawn.
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	if r.font.Path == "" {
		return nil, apperr.NewConfigError("font_path",
			fmt.Errorf("the invoice needs a TrueType font with Japanese glyphs, %q is built in", r.font.Family))
	}

	pdf := pdfkit.NewDocument(pdfkit.A4Size, preferences.Portrait)
	pdf.SetMargins(horizontalMargin, verticalMargin, horizontalMargin)
	pdf.SetAutoPageBreak(false, verticalMargin)
	pdf.SetTitle(fmt.Sprintf("%s %s", Title, doc.Number), true)

	if err := r.font.Register(pdf); err != nil {
		return nil, err
	}
	family := r.font.Family

	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*horizontalMargin

	// date
	pdf.SetFont(family, "", normalSize)
	textLine(pdf, contentW, normalSize, doc.DateLine, "R")
	pdf.Ln(12)

	// title
	pdf.SetFont(family, "", titleSize)
	textLine(pdf, contentW, titleSize, doc.Title, "C")
	pdf.Ln(20)

	// customer
	pdf.SetFont(family, "", normalSize)
	textLine(pdf, contentW, normalSize, doc.Customer, "L")
	textLine(pdf, contentW, normalSize, doc.Attention, "L")
	pdf.Ln(12)

	// price summary
	r.drawTable(pdf, summaryWidths, doc.Summary, &pdfkit.LightGrey, func(col int) string { return "C" })
	pdf.Ln(20)

	// line items: the name column stays left aligned
	r.drawTable(pdf, itemWidths, doc.Items, &pdfkit.LightBlue, func(col int) string {
		if col == 0 {
			return "L"
		}
		return "C"
	})
	pdf.Ln(20)

	// issuer
	pdf.SetFont(family, "", smallSize)
	for _, line := range doc.Footer {
		textLine(pdf, contentW, smallSize, line, "L")
	}
	pdf.Ln(20)

	// notes box
	pdf.SetFont(family, "", normalSize)
	ensureSpace(pdf, notesHeight)
	x := pdfkit.CenteredX(pdf, notesWidth)
	y := pdf.GetY()
	pdf.SetLineWidth(gridLine)
	pdf.Rect(x, y, notesWidth, notesHeight, "D")
	pdf.SetXY(x+cellPadding*2, y+cellPadding)
	pdf.CellFormat(notesWidth-cellPadding*4, leading(normalSize), doc.Notes, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("Failed to render invoice", zap.String("invoice_no", doc.Number), zap.Error(err))
		return nil, apperr.NewRenderError("", err)
	}

	r.logger.Debug("Rendered invoice",
		zap.String("invoice_no", doc.Number),
		zap.Int("items", len(doc.Items.Rows)),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// drawTable draws a header row with fill and then the data rows,
// horizontally centered on the page.
func (r *Renderer) drawTable(pdf *gofpdf.Fpdf, widths []float64, t Table, fill *pdfkit.RGB, align func(col int) string) {
	style := pdfkit.RowStyle{
		LineHeight: leading(normalSize),
		Padding:    cellPadding,
		LineWidth:  gridLine,
	}
	x := pdfkit.CenteredX(pdf, pdfkit.TableWidth(widths))

	header := make([]pdfkit.Cell, len(t.Header))
	for i, h := range t.Header {
		header[i] = pdfkit.Cell{Text: h, Fill: fill, Align: "C"}
	}
	ensureSpace(pdf, pdfkit.RowHeight(pdf, widths, header, style))
	pdfkit.DrawRow(pdf, x, widths, header, style)

	for _, row := range t.Rows {
		cells := make([]pdfkit.Cell, len(row))
		for i, v := range row {
			cells[i] = pdfkit.Cell{Text: v, Align: align(i)}
		}
		ensureSpace(pdf, pdfkit.RowHeight(pdf, widths, cells, style))
		pdfkit.DrawRow(pdf, x, widths, cells, style)
	}
}

// ensureSpace starts a new page when h no longer fits above the bottom margin
func ensureSpace(pdf *gofpdf.Fpdf, h float64) {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h > pageH-verticalMargin {
		pdf.AddPage()
	}
}

func textLine(pdf *gofpdf.Fpdf, w, size float64, text, align string) {
	ensureSpace(pdf, leading(size))
	pdf.CellFormat(w, leading(size), text, "", 1, align, false, 0, "")
}

func leading(size float64) float64 {
	return size * 1.2
}
