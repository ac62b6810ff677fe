package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
kintone:
  base_url: https://example.cybozu.com
  app_id: 42
  api_token: secret
output:
  dir: out
invoice:
  footer:
    - Line one
    - Line two
  fields:
    number: seikyu_no
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.cybozu.com", cfg.Kintone.BaseURL)
	assert.Equal(t, int64(42), cfg.Kintone.AppID)
	assert.Equal(t, 30*time.Second, cfg.Kintone.Timeout)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "output_kintone.pdf", cfg.Output.ReportFile)
	assert.Equal(t, "font_config.json", cfg.Preferences.Path)
	assert.Equal(t, []string{"Line one", "Line two"}, cfg.Invoice.Footer)
	assert.Equal(t, "seikyu_no", cfg.Invoice.Fields.Number)
	assert.Equal(t, "subdata", cfg.Invoice.Fields.LineItems)
	assert.Equal(t, "Helvetica", cfg.Invoice.FontFamily)
}

func TestLoad_TokenFromEnvironment(t *testing.T) {
	path := writeConfig(t, `
kintone:
  base_url: https://example.cybozu.com
  app_id: 7
`)
	t.Setenv("KINTONE_API_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Kintone.APIToken)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing base url",
			content: "kintone:\n  app_id: 1\n  api_token: x\n",
			wantErr: "kintone.base_url is required",
		},
		{
			name:    "missing app id",
			content: "kintone:\n  base_url: https://x\n  api_token: x\n",
			wantErr: "kintone.app_id",
		},
		{
			name:    "missing token",
			content: "kintone:\n  base_url: https://x\n  app_id: 1\n",
			wantErr: "kintone.api_token is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("KINTONE_API_TOKEN", "")
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
