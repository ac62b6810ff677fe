package port

import (
	"context"

	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

// FileStorage defines file storage operations for generated artifacts
type FileStorage interface {
	Save(ctx context.Context, path string, content []byte) error
	GetFullPath(relativePath string) string
}

// PreferenceStore loads and saves the report rendering preferences
type PreferenceStore interface {
	Load() (preferences.Preferences, error)
	Save(prefs preferences.Preferences) error
}
