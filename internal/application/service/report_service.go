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
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
	"github.com/kobayashi-mfg/kintone-printer/internal/report"
)

// ReportRequest selects the columns and layout of one report
type ReportRequest struct {
	Filter   string
	Display  []string
	Encode   []string
	Suppress []string
	Format   string

	// Preferences replaces the saved preferences when set
	Preferences *preferences.Preferences
}

// ReportResult represents the result of report generation
type ReportResult struct {
	GenerationID     string
	FilePath         string
	Format           string
	Rows             int
	Skipped          int
	PreferencesSaved bool
}

// ReportService prints the tabular report over a record set
type ReportService interface {
	GenerateReport(ctx context.Context, req ReportRequest) (*ReportResult, error)
	GetPreferences(ctx context.Context) (preferences.Preferences, error)
}

// ReportOutputs maps an output format to its renderer and file name
type ReportOutputs map[string]ReportOutput

// ReportOutput is one output format of the report
type ReportOutput struct {
	Renderer ReportRenderer
	FileName string
}

type reportServiceImpl struct {
	source         port.RecordSource
	composer       *report.Composer
	outputs        ReportOutputs
	prefStore      port.PreferenceStore
	storage        port.FileStorage
	generationRepo port.GenerationRepository
	logger         Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	source port.RecordSource,
	composer *report.Composer,
	outputs ReportOutputs,
	prefStore port.PreferenceStore,
	storage port.FileStorage,
	generationRepo port.GenerationRepository,
	logger Logger,
) ReportService {
	return &reportServiceImpl{
		source:         source,
		composer:       composer,
		outputs:        outputs,
		prefStore:      prefStore,
		storage:        storage,
		generationRepo: generationRepo,
		logger:         logger,
	}
}

// GetPreferences returns the saved preferences, or the defaults
func (s *reportServiceImpl) GetPreferences(ctx context.Context) (preferences.Preferences, error) {
	return s.prefStore.Load()
}

// GenerateReport fetches the record set, applies the column flags and writes
// the report. Preferences are saved only after the file was written.
func (s *reportServiceImpl) GenerateReport(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	if !hasName(req.Display) {
		return nil, apperr.NewValidationError("select at least one column to display")
	}

	formatKey := strings.ToLower(strings.TrimSpace(req.Format))
	if formatKey == "" {
		formatKey = entity.FormatPDF
	}
	output, ok := s.outputs[formatKey]
	if !ok {
		return nil, apperr.NewValidationError("unsupported output format %q", req.Format)
	}

	prefs, err := s.resolvePreferences(req.Preferences)
	if err != nil {
		s.logger.Error("Failed to load preferences", "error", err)
		return nil, err
	}

	s.logger.Info("Generating report",
		"filter", req.Filter,
		"format", formatKey,
		"display", strings.Join(req.Display, ","))

	records, err := s.source.FetchAll(ctx, req.Filter)
	if err != nil {
		s.logger.Error("Failed to fetch records", "error", err, "filter", req.Filter)
		return nil, err
	}

	specs, err := report.BuildSpecs(record.Columns(records), req.Display, req.Encode, req.Suppress)
	if err != nil {
		return nil, err
	}

	doc, err := s.composer.Compose(records, specs, prefs)
	if err != nil {
		s.logger.Error("Failed to compose report", "error", err)
		return nil, err
	}

	content, err := output.Renderer.Render(doc)
	if err != nil {
		s.logger.Error("Failed to render report", "error", err, "format", formatKey)
		return nil, err
	}

	if err := s.storage.Save(ctx, output.FileName, content); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	result := &ReportResult{
		FilePath: s.storage.GetFullPath(output.FileName),
		Format:   formatKey,
		Rows:     len(doc.Rows),
		Skipped:  doc.Skipped,
	}

	if err := s.prefStore.Save(prefs); err != nil {
		s.logger.Error("Failed to save preferences", "error", err)
	} else {
		result.PreferencesSaved = true
	}

	gen := &entity.Generation{
		Kind:      entity.KindReport,
		Format:    formatKey,
		FilePath:  result.FilePath,
		Filter:    req.Filter,
		RowCount:  result.Rows,
		CreatedAt: time.Now(),
	}
	if err := s.generationRepo.Create(ctx, gen); err != nil {
		s.logger.Error("Failed to record generation", "error", err, "path", result.FilePath)
	} else {
		result.GenerationID = gen.ID
	}

	s.logger.Info("Report generated",
		"path", result.FilePath,
		"rows", result.Rows,
		"skipped", result.Skipped)

	return result, nil
}

func (s *reportServiceImpl) resolvePreferences(override *preferences.Preferences) (preferences.Preferences, error) {
	if override != nil {
		prefs := *override
		prefs.Orientation = preferences.NormalizeOrientation(prefs.Orientation)
		return prefs, nil
	}
	return s.prefStore.Load()
}

func hasName(names []string) bool {
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}
