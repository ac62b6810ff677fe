// Package report composes and renders the tabular report over a record set.
package report

import (
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
)

// QRHeader labels the trailing code column
const QRHeader = "QR"

// Row is one admitted record: its display cells and the QR image, nil when
// the payload was empty.
type Row struct {
	Cells   []string
	Payload string
	QR      []byte
}

// Document is a composed report
type Document struct {
	Header      []string
	Rows        []Row
	Font        pdfkit.Font
	FontSize    float64
	Paper       pdfkit.PaperSize
	Orientation string
	Skipped     int
}

// Columns returns the number of display columns, not counting QR
func (d *Document) Columns() int {
	return len(d.Header) - 1
}
