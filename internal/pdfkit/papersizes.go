// Package pdfkit wraps gofpdf with the page, font and table primitives
// shared by the invoice and report renderers. All lengths are in points.
package pdfkit

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

// PointsPerMM converts millimetres to points
const PointsPerMM = 72.0 / 25.4

// MM returns v millimetres in points
func MM(v float64) float64 { return v * PointsPerMM }

type PaperSize struct {
	Name   string
	Width  float64 // in `pt` (1" = 72pts)
	Height float64 // in `pt`
}

var (
	A4Size     = PaperSize{Name: preferences.PageA4, Width: 595.27559, Height: 841.88976}  // 210mm x 297mm
	A3Size     = PaperSize{Name: preferences.PageA3, Width: 841.88976, Height: 1190.55118} // 297mm x 420mm
	LetterSize = PaperSize{Name: preferences.PageLetter, Width: 612, Height: 792}          // 8.5" x 11"
)

var paperSizes = map[string]PaperSize{
	A4Size.Name:     A4Size,
	A3Size.Name:     A3Size,
	LetterSize.Name: LetterSize,
}

// LookupPaperSize returns the paper for a page size key
func LookupPaperSize(key string) (PaperSize, error) {
	p, ok := paperSizes[key]
	if !ok {
		return PaperSize{}, fmt.Errorf("unknown page size %q", key)
	}
	return p, nil
}

// Oriented swaps width and height for landscape
func (p PaperSize) Oriented(orientation string) PaperSize {
	if preferences.NormalizeOrientation(orientation) == preferences.Landscape {
		return PaperSize{Name: p.Name, Width: p.Height, Height: p.Width}
	}
	return p
}

// NewDocument starts a point-based document on paper in the given
// orientation. paper is always given in portrait dimensions.
func NewDocument(paper PaperSize, orientation string) *gofpdf.Fpdf {
	orientationStr := "P"
	if preferences.NormalizeOrientation(orientation) == preferences.Landscape {
		orientationStr = "L"
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientationStr,
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: paper.Width, Ht: paper.Height},
	})
	pdf.SetCreator("kintone-printer", true)
	return pdf
}
