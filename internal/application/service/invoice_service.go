package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/format"
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
	"github.com/kobayashi-mfg/kintone-printer/pkg/utils"
)

// InvoiceResult represents the result of invoice generation
type InvoiceResult struct {
	GenerationID string
	Number       string
	FilePath     string
	LineItems    int
}

// InvoiceService prints the invoice of one record
type InvoiceService interface {
	GenerateInvoice(ctx context.Context, filter, number string) (*InvoiceResult, error)
}

type invoiceServiceImpl struct {
	source         port.RecordSource
	composer       *invoice.Composer
	renderer       InvoiceRenderer
	storage        port.FileStorage
	generationRepo port.GenerationRepository
	logger         Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	source port.RecordSource,
	composer *invoice.Composer,
	renderer InvoiceRenderer,
	storage port.FileStorage,
	generationRepo port.GenerationRepository,
	logger Logger,
) InvoiceService {
	return &invoiceServiceImpl{
		source:         source,
		composer:       composer,
		renderer:       renderer,
		storage:        storage,
		generationRepo: generationRepo,
		logger:         logger,
	}
}

// GenerateInvoice fetches the records matching filter, selects the one whose
// invoice number is number and writes invoice_<number>.pdf. The file is
// written only once the whole document rendered.
func (s *invoiceServiceImpl) GenerateInvoice(ctx context.Context, filter, number string) (*InvoiceResult, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperr.NewValidationError("no record selected")
	}

	s.logger.Info("Generating invoice", "invoice_no", number, "filter", filter)

	records, err := s.source.FetchAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to fetch records", "error", err, "filter", filter)
		return nil, err
	}

	fields := s.composer.Fields()
	header, ok := selectRecord(records, fields.Number, number)
	if !ok {
		return nil, apperr.NewValidationError("no record selected: invoice %q not found", number)
	}

	doc, err := s.composer.Compose(header, header.Get(fields.LineItems))
	if err != nil {
		s.logger.Error("Failed to compose invoice", "error", err, "invoice_no", number)
		return nil, err
	}

	content, err := s.renderer.Render(doc)
	if err != nil {
		s.logger.Error("Failed to render invoice", "error", err, "invoice_no", number)
		return nil, err
	}

	fileName := utils.SanitizeFileName(doc.FileName())
	if err := s.storage.Save(ctx, fileName, content); err != nil {
		return nil, fmt.Errorf("failed to write invoice: %w", err)
	}

	result := &InvoiceResult{
		Number:    doc.Number,
		FilePath:  s.storage.GetFullPath(fileName),
		LineItems: len(doc.Items.Rows),
	}

	gen := &entity.Generation{
		Kind:      entity.KindInvoice,
		Format:    entity.FormatPDF,
		FilePath:  result.FilePath,
		Filter:    filter,
		RowCount:  result.LineItems,
		CreatedAt: time.Now(),
	}
	if err := s.generationRepo.Create(ctx, gen); err != nil {
		// the invoice is already on disk; a missing history entry is not fatal
		s.logger.Error("Failed to record generation", "error", err, "path", result.FilePath)
	} else {
		result.GenerationID = gen.ID
	}

	s.logger.Info("Invoice generated",
		"invoice_no", result.Number,
		"path", result.FilePath,
		"line_items", result.LineItems)

	return result, nil
}

// selectRecord returns the first record whose code field reads as value
func selectRecord(records []record.Record, code, value string) (record.Record, bool) {
	for _, r := range records {
		if strings.TrimSpace(format.Normalize(r.Get(code))) == value {
			return r, true
		}
	}
	return record.Record{}, false
}
