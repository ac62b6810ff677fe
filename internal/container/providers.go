package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/application/service"
	"github.com/kobayashi-mfg/kintone-printer/internal/config"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/entity"
	"github.com/kobayashi-mfg/kintone-printer/internal/infrastructure/persistence/repository"
	"github.com/kobayashi-mfg/kintone-printer/internal/infrastructure/storage"
	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
	"github.com/kobayashi-mfg/kintone-printer/internal/kintone"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
	"github.com/kobayashi-mfg/kintone-printer/internal/report"
	"github.com/kobayashi-mfg/kintone-printer/pkg/database"
)

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Records service.RecordService
	Invoice service.InvoiceService
	Report  service.ReportService
	History service.HistoryService
}

// ProvideDatabase opens the history database and applies pending migrations.
func ProvideDatabase(cfg config.DatabaseConfig, logger *zap.Logger) (*database.DB, error) {
	db, err := database.New(database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}, logger)
	if err != nil {
		return nil, err
	}

	if err := database.NewMigrator(db, logger).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// ProvideRecordSource creates the kintone client
func ProvideRecordSource(cfg config.KintoneConfig, logger *zap.Logger) *kintone.Client {
	return kintone.NewClient(kintone.Config{
		BaseURL:  cfg.BaseURL,
		AppID:    cfg.AppID,
		APIToken: cfg.APIToken,
		Timeout:  cfg.Timeout,
	}, logger)
}

// ProvideStorage creates the output directory storage
func ProvideStorage(cfg config.OutputConfig, logger *zap.Logger) port.FileStorage {
	return storage.NewLocalFileStorage(cfg.Dir, logger)
}

// ServiceDeps holds dependencies for creating services.
type ServiceDeps struct {
	Config  *config.Config
	DB      *database.DB
	Source  port.RecordSource
	Storage port.FileStorage
	Logger  *zap.Logger
}

// ProvideServices creates the composers, renderers and services. The invoice
// font is resolved here so a missing font file is reported at startup.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.Config == nil || deps.DB == nil || deps.Logger == nil {
		return nil, fmt.Errorf("config, database and logger are required")
	}
	cfg := deps.Config

	invoiceFont, err := pdfkit.ResolveFont(cfg.Invoice.FontFamily, cfg.Invoice.FontPath)
	if err != nil {
		return nil, fmt.Errorf("invoice font: %w", err)
	}
	if invoiceFont.IsCore() {
		deps.Logger.Warn("Invoice font is built in and has no Japanese glyphs, invoices will fail until invoice.font_path is set",
			zap.String("font", invoiceFont.Family))
	}

	serviceLogger := NewLoggerAdapter(deps.Logger)
	generations := repository.NewGenerationRepository(deps.DB.DB, deps.Logger)
	prefStore := preferences.NewStore(cfg.Preferences.Path, deps.Logger)

	invoiceComposer := invoice.NewComposer(cfg.Invoice.Fields, cfg.Invoice.Footer)
	reportComposer := report.NewComposer(report.NewQREncoder(), deps.Logger)

	outputs := service.ReportOutputs{
		entity.FormatPDF: {
			Renderer: report.NewRenderer(deps.Logger),
			FileName: cfg.Output.ReportFile,
		},
		entity.FormatXLSX: {
			Renderer: report.NewSheetRenderer(deps.Logger),
			FileName: cfg.Output.ReportSheetFile,
		},
	}

	return &ServiceBundle{
		Records: service.NewRecordService(deps.Source, cfg.Invoice.Fields, serviceLogger),
		Invoice: service.NewInvoiceService(
			deps.Source,
			invoiceComposer,
			invoice.NewRenderer(invoiceFont, deps.Logger),
			deps.Storage,
			generations,
			serviceLogger,
		),
		Report: service.NewReportService(
			deps.Source,
			reportComposer,
			outputs,
			prefStore,
			deps.Storage,
			generations,
			serviceLogger,
		),
		History: service.NewHistoryService(generations, serviceLogger),
	}, nil
}
