package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
)

const (
	pageMargin  = 72.0
	qrSize      = 60.0
	cellPadding = 4.0
	gridLine    = 1.0
)

// Renderer draws report documents as PDF tables
type Renderer struct {
	logger *zap.Logger
}

// NewRenderer creates a report renderer
func NewRenderer(logger *zap.Logger) *Renderer {
	return &Renderer{logger: logger}
}

// Render draws doc into memory and returns the PDF bytes. The header row is
// repeated at the top of every page.
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	encoded, err := encodeText(doc)
	if err != nil {
		r.logger.Error("Report text does not fit the font", zap.String("font", doc.Font.Family), zap.Error(err))
		return nil, err
	}
	doc = encoded

	pdf := pdfkit.NewDocument(doc.Paper, doc.Orientation)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)

	if err := doc.Font.Register(pdf); err != nil {
		return nil, err
	}
	pdf.SetFont(doc.Font.Family, "", doc.FontSize)

	for i, row := range doc.Rows {
		if row.QR == nil {
			continue
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(imageName(i), opts, bytes.NewReader(row.QR))
	}
	if pdf.Err() {
		r.logger.Error("Failed to register QR images", zap.Error(pdf.Error()))
		return nil, apperr.NewRenderError(QRHeader, pdf.Error())
	}

	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	widths := columnWidths(pdf, doc, pageW-2*pageMargin)
	x := pdfkit.CenteredX(pdf, pdfkit.TableWidth(widths))
	style := pdfkit.RowStyle{
		LineHeight: doc.FontSize * 1.2,
		Padding:    cellPadding,
		LineWidth:  gridLine,
	}

	header := headerCells(doc.Header)
	pdfkit.DrawRow(pdf, x, widths, header, style)

	for i, row := range doc.Rows {
		cells := make([]pdfkit.Cell, 0, len(row.Cells)+1)
		for _, text := range row.Cells {
			cells = append(cells, pdfkit.Cell{Text: text})
		}
		if row.QR != nil {
			cells = append(cells, pdfkit.Cell{Image: imageName(i), ImageW: qrSize, ImageH: qrSize})
		} else {
			cells = append(cells, pdfkit.Cell{})
		}

		if pdf.GetY()+pdfkit.RowHeight(pdf, widths, cells, style) > pageH-pageMargin {
			pdf.AddPage()
			pdfkit.DrawRow(pdf, x, widths, header, style)
		}
		pdfkit.DrawRow(pdf, x, widths, cells, style)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		r.logger.Error("Failed to render report", zap.Int("rows", len(doc.Rows)), zap.Error(err))
		return nil, apperr.NewRenderError("", err)
	}

	r.logger.Debug("Rendered report",
		zap.Int("rows", len(doc.Rows)),
		zap.Int("pages", pdf.PageNo()),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// encodeText returns a copy of doc whose texts are converted for its font
func encodeText(doc *Document) (*Document, error) {
	out := *doc
	out.Header = append([]string(nil), doc.Header...)
	if err := doc.Font.EncodeAll(out.Header); err != nil {
		return nil, err
	}

	out.Rows = make([]Row, len(doc.Rows))
	for i, row := range doc.Rows {
		row.Cells = append([]string(nil), row.Cells...)
		if err := doc.Font.EncodeAll(row.Cells); err != nil {
			return nil, err
		}
		out.Rows[i] = row
	}
	return &out, nil
}

// headerCells fills every header cell but the trailing QR one
func headerCells(header []string) []pdfkit.Cell {
	cells := make([]pdfkit.Cell, len(header))
	for i, h := range header {
		cells[i] = pdfkit.Cell{Text: h}
		if i < len(header)-1 {
			cells[i].Fill = &pdfkit.LightGrey
		}
	}
	return cells
}

// columnWidths sizes text columns to their widest cell and shrinks them
// proportionally when the table would overflow avail. The QR column keeps
// its fixed width.
func columnWidths(pdf *gofpdf.Fpdf, doc *Document, avail float64) []float64 {
	n := doc.Columns()
	widths := make([]float64, n+1)
	widths[n] = qrSize + 2*cellPadding

	for i := 0; i < n; i++ {
		widths[i] = pdf.GetStringWidth(doc.Header[i]) + 2*cellPadding
	}
	for _, row := range doc.Rows {
		for i, text := range row.Cells {
			if w := pdf.GetStringWidth(text) + 2*cellPadding; w > widths[i] {
				widths[i] = w
			}
		}
	}

	var text float64
	for _, w := range widths[:n] {
		text += w
	}
	room := avail - widths[n]
	if text > room && room > 0 {
		scale := room / text
		for i := range widths[:n] {
			widths[i] *= scale
		}
	}
	return widths
}

func imageName(row int) string {
	return fmt.Sprintf("qr-%d", row)
}
