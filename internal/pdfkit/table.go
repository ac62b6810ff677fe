package pdfkit

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RGB is a fill color
type RGB struct{ R, G, B int }

var (
	LightGrey = RGB{R: 211, G: 211, B: 211}
	LightBlue = RGB{R: 173, G: 216, B: 230}
)

// Cell is one table cell: text, an image registered on the document, or neither.
type Cell struct {
	Text   string
	Image  string
	ImageW float64
	ImageH float64
	Fill   *RGB
	Align  string // L, C or R; empty means centered
}

// RowStyle controls how DrawRow lays cells out
type RowStyle struct {
	LineHeight float64
	Padding    float64
	MinHeight  float64
	LineWidth  float64
}

// RowHeight returns the height DrawRow will use for cells
func RowHeight(pdf *gofpdf.Fpdf, widths []float64, cells []Cell, style RowStyle) float64 {
	h := style.MinHeight
	for i, c := range cells {
		var need float64
		if c.Image != "" {
			need = c.ImageH + 2*style.Padding
		} else {
			lines := WrapText(pdf, c.Text, widths[i]-2*style.Padding)
			need = float64(len(lines))*style.LineHeight + 2*style.Padding
		}
		if need > h {
			h = need
		}
	}
	return h
}

// DrawRow draws one grid row at the current position and moves below it.
func DrawRow(pdf *gofpdf.Fpdf, x float64, widths []float64, cells []Cell, style RowStyle) float64 {
	y := pdf.GetY()
	h := RowHeight(pdf, widths, cells, style)

	if style.LineWidth > 0 {
		pdf.SetLineWidth(style.LineWidth)
	}

	cx := x
	for i, c := range cells {
		w := widths[i]
		if c.Fill != nil {
			pdf.SetFillColor(c.Fill.R, c.Fill.G, c.Fill.B)
			pdf.Rect(cx, y, w, h, "FD")
		} else {
			pdf.Rect(cx, y, w, h, "D")
		}

		switch {
		case c.Image != "":
			pdf.ImageOptions(c.Image, cx+(w-c.ImageW)/2, y+(h-c.ImageH)/2, c.ImageW, c.ImageH,
				false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		case c.Text != "":
			drawLines(pdf, cx, y, w, h, c, style)
		}
		cx += w
	}

	pdf.SetXY(x, y+h)
	return h
}

func drawLines(pdf *gofpdf.Fpdf, x, y, w, h float64, c Cell, style RowStyle) {
	align := c.Align
	if align == "" {
		align = "C"
	}
	lines := WrapText(pdf, c.Text, w-2*style.Padding)
	top := y + (h-float64(len(lines))*style.LineHeight)/2
	for i, line := range lines {
		pdf.SetXY(x+style.Padding, top+float64(i)*style.LineHeight)
		pdf.CellFormat(w-2*style.Padding, style.LineHeight, line, "", 0, align+"M", false, 0, "")
	}
}

// WrapText breaks text into lines no wider than width using the current font.
// Explicit newlines are kept.
func WrapText(pdf *gofpdf.Fpdf, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		if width <= 0 || pdf.GetStringWidth(para) <= width {
			out = append(out, para)
			continue
		}
		var line []rune
		for _, r := range para {
			candidate := string(append(line, r))
			if len(line) > 0 && pdf.GetStringWidth(candidate) > width {
				out = append(out, string(line))
				line = []rune{r}
				continue
			}
			line = append(line, r)
		}
		out = append(out, string(line))
	}
	return out
}

// TableWidth sums column widths
func TableWidth(widths []float64) float64 {
	var w float64
	for _, v := range widths {
		w += v
	}
	return w
}

// CenteredX returns the left edge that centers a block of width w on the page
func CenteredX(pdf *gofpdf.Fpdf, w float64) float64 {
	pageW, _ := pdf.GetPageSize()
	return (pageW - w) / 2
}
