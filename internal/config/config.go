// Package config loads the application configuration from YAML, a .env file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/kobayashi-mfg/kintone-printer/internal/invoice"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Kintone     KintoneConfig     `mapstructure:"kintone"`
	Output      OutputConfig      `mapstructure:"output"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Invoice     InvoiceConfig     `mapstructure:"invoice"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds the generation history database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// KintoneConfig holds kintone API configuration
type KintoneConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	AppID    int64         `mapstructure:"app_id"`
	APIToken string        `mapstructure:"api_token"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// OutputConfig names where generated documents go
type OutputConfig struct {
	Dir             string `mapstructure:"dir"`
	ReportFile      string `mapstructure:"report_file"`
	ReportSheetFile string `mapstructure:"report_sheet_file"`
}

// PreferencesConfig locates the report preference file
type PreferencesConfig struct {
	Path string `mapstructure:"path"`
}

// InvoiceConfig holds the invoice font, footer and field codes
type InvoiceConfig struct {
	FontFamily string         `mapstructure:"font_family"`
	FontPath   string         `mapstructure:"font_path"`
	Footer     []string       `mapstructure:"footer"`
	Fields     invoice.Fields `mapstructure:"fields"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables. A .env file
// next to the working directory is applied first; a missing config file is
// allowed when everything required comes from the environment.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)

	v.SetDefault("database.path", "data/history.db")
	v.SetDefault("database.max_open_conns", 1)
	v.SetDefault("database.max_idle_conns", 1)
	v.SetDefault("database.conn_max_lifetime", time.Duration(0))

	v.SetDefault("kintone.timeout", 30*time.Second)

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.report_file", "output_kintone.pdf")
	v.SetDefault("output.report_sheet_file", "output_kintone.xlsx")

	v.SetDefault("preferences.path", "font_config.json")

	v.SetDefault("invoice.font_family", "Helvetica")
	v.SetDefault("invoice.font_path", "")
	v.SetDefault("invoice.footer", invoice.DefaultFooter)

	fields := invoice.DefaultFields()
	v.SetDefault("invoice.fields.number", fields.Number)
	v.SetDefault("invoice.fields.date", fields.Date)
	v.SetDefault("invoice.fields.customer", fields.Customer)
	v.SetDefault("invoice.fields.staff", fields.Staff)
	v.SetDefault("invoice.fields.subtotal", fields.Subtotal)
	v.SetDefault("invoice.fields.tax", fields.Tax)
	v.SetDefault("invoice.fields.total", fields.Total)
	v.SetDefault("invoice.fields.line_items", fields.LineItems)
	v.SetDefault("invoice.fields.item_name", fields.ItemName)
	v.SetDefault("invoice.fields.item_price", fields.ItemPrice)
	v.SetDefault("invoice.fields.item_quantity", fields.ItemQuantity)
	v.SetDefault("invoice.fields.item_amount", fields.ItemAmount)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars(v *viper.Viper) {
	v.BindEnv("kintone.base_url", "KINTONE_BASE_URL")
	v.BindEnv("kintone.app_id", "KINTONE_APP_ID")
	v.BindEnv("kintone.api_token", "KINTONE_API_TOKEN")
	v.BindEnv("invoice.font_path", "INVOICE_FONT_PATH")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Kintone.BaseURL == "" {
		return fmt.Errorf("kintone.base_url is required")
	}
	if c.Kintone.AppID <= 0 {
		return fmt.Errorf("kintone.app_id must be a positive number")
	}
	if c.Kintone.APIToken == "" {
		return fmt.Errorf("kintone.api_token is required")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.ReportFile == "" || c.Output.ReportSheetFile == "" {
		return fmt.Errorf("output.report_file and output.report_sheet_file are required")
	}
	if c.Preferences.Path == "" {
		return fmt.Errorf("preferences.path is required")
	}

	if c.Invoice.Fields.Number == "" || c.Invoice.Fields.LineItems == "" {
		return fmt.Errorf("invoice.fields.number and invoice.fields.line_items are required")
	}

	return nil
}
