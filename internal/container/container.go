// Package container wires configuration, infrastructure and application
// services together for the command line tool and the HTTP server.
package container

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/application/port"
	"github.com/kobayashi-mfg/kintone-printer/internal/application/service"
	"github.com/kobayashi-mfg/kintone-printer/internal/config"
	"github.com/kobayashi-mfg/kintone-printer/pkg/database"
)

// Container owns every long-lived dependency. Components are built in
// dependency order by Start and released in reverse order by Close.
type Container struct {
	config *config.Config
	logger *zap.Logger

	db       *database.DB
	source   port.RecordSource
	storage  port.FileStorage
	services *ServiceBundle

	mu      sync.Mutex
	started bool
	closed  bool
}

// New creates a container; call Start before using the services.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Container{config: cfg, logger: logger}, nil
}

// Start initializes components in this order: database, kintone client,
// output storage, application services.
func (c *Container) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("container has been closed")
	}
	if c.started {
		return fmt.Errorf("container already started")
	}

	db, err := ProvideDatabase(c.config.Database, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.db = db

	c.source = ProvideRecordSource(c.config.Kintone, c.logger)
	c.storage = ProvideStorage(c.config.Output, c.logger)

	services, err := ProvideServices(&ServiceDeps{
		Config:  c.config,
		DB:      c.db,
		Source:  c.source,
		Storage: c.storage,
		Logger:  c.logger,
	})
	if err != nil {
		c.db.Close()
		c.db = nil
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services

	c.started = true
	c.logger.Debug("Container started")
	return nil
}

// Close releases the database
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("container already closed")
	}
	c.closed = true
	c.started = false

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			c.logger.Error("Failed to close database", zap.Error(err))
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}

// Services returns the application services
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Logger returns the root logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Config returns the configuration the container was built from
func (c *Container) Config() *config.Config {
	return c.config
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

// NewLoggerAdapter wraps logger for the application and HTTP layers
func NewLoggerAdapter(logger *zap.Logger) service.Logger {
	return &zapLoggerAdapter{logger: logger}
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
