package service

import (
	"context"
	"fmt"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/format"
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
)

// RecordService lists what is available in the kintone app
type RecordService interface {
	ListRecords(ctx context.Context, filter string) ([]entity.RecordSummary, error)
	ListColumns(ctx context.Context, filter string) ([]string, error)
}

type recordServiceImpl struct {
	source port.RecordSource
	fields invoice.Fields
	logger Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(source port.RecordSource, fields invoice.Fields, logger Logger) RecordService {
	return &recordServiceImpl{
		source: source,
		fields: fields,
		logger: logger,
	}
}

// ListRecords returns invoice number, customer and date of every record
func (s *recordServiceImpl) ListRecords(ctx context.Context, filter string) ([]entity.RecordSummary, error) {
	records, err := s.source.FetchAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to fetch records", "error", err, "filter", filter)
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}

	summaries := make([]entity.RecordSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, summarize(r, s.fields))
	}

	s.logger.Info("Listed records", "count", len(summaries), "filter", filter)
	return summaries, nil
}

// ListColumns returns the field codes of the record set in source order
func (s *recordServiceImpl) ListColumns(ctx context.Context, filter string) ([]string, error) {
	records, err := s.source.FetchAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to fetch records", "error", err, "filter", filter)
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return record.Columns(records), nil
}

func summarize(r record.Record, fields invoice.Fields) entity.RecordSummary {
	return entity.RecordSummary{
		Number:   format.Normalize(r.Get(fields.Number)),
		Customer: format.Normalize(r.Get(fields.Customer)),
		Date:     format.Normalize(r.Get(fields.Date)),
	}
}
