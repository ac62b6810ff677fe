// Package service holds the use cases behind the CLI and the HTTP API:
// listing records, printing invoices and printing tabular reports.
package service

import (
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
	"github.com/kobayashi-mfg/kintone-printer/internal/report"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// InvoiceRenderer draws a composed invoice
type InvoiceRenderer interface {
	Render(doc *invoice.Document) ([]byte, error)
}

// ReportRenderer draws a composed report in one output format
type ReportRenderer interface {
	Render(doc *report.Document) ([]byte, error)
}
