package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

// Store reads and writes preferences as a JSON file. Writes replace the
// whole file; concurrent writers are last-writer-wins.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store backed by path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// Load returns the saved preferences, or Default when the file does not exist.
// Keys missing from the file keep their default value.
func (s *Store) Load() (Preferences, error) {
	defaults := Default()

	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("No saved preferences, using defaults", zap.String("path", s.path))
		return defaults, nil
	}

	v := s.newViper(defaults)
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return Preferences{}, apperr.NewConfigError("preferences", fmt.Errorf("failed to read %s: %w", s.path, err))
	}

	var prefs Preferences
	if err := v.Unmarshal(&prefs); err != nil {
		return Preferences{}, apperr.NewConfigError("preferences", fmt.Errorf("failed to decode %s: %w", s.path, err))
	}
	prefs.Orientation = NormalizeOrientation(prefs.Orientation)

	s.logger.Debug("Loaded preferences",
		zap.String("path", s.path),
		zap.String("font_name", prefs.FontName),
		zap.String("page_size", prefs.PageSize))

	return prefs, nil
}

// Save overwrites the file with prefs
func (s *Store) Save(prefs Preferences) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create preferences directory: %w", err)
		}
	}

	v := s.newViper(prefs)
	v.Set("font_name", prefs.FontName)
	v.Set("font_path", prefs.FontPath)
	v.Set("font_size", prefs.FontSize)
	v.Set("page_size", prefs.PageSize)
	v.Set("orientation", NormalizeOrientation(prefs.Orientation))

	if err := v.WriteConfigAs(s.path); err != nil {
		s.logger.Error("Failed to save preferences", zap.String("path", s.path), zap.Error(err))
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	s.logger.Info("Saved preferences", zap.String("path", s.path))
	return nil
}

func (s *Store) newViper(defaults Preferences) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("font_name", defaults.FontName)
	v.SetDefault("font_path", defaults.FontPath)
	v.SetDefault("font_size", defaults.FontSize)
	v.SetDefault("page_size", defaults.PageSize)
	v.SetDefault("orientation", defaults.Orientation)
	return v
}
