// Package preferences holds the rendering preferences of the tabular report
// and their JSON store.
package preferences

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

// Page size keys
const (
	PageA4     = "A4"
	PageA3     = "A3"
	PageLetter = "LETTER"
)

// Orientation keys
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// legacy orientation keys written by the desktop tool
var orientationAliases = map[string]string{
	"縦": Portrait,
	"横": Landscape,
}

var pageSizes = []string{PageA4, PageA3, PageLetter}

// Preferences is the persisted report layout
type Preferences struct {
	FontName    string `json:"font_name" mapstructure:"font_name"`
	FontPath    string `json:"font_path" mapstructure:"font_path"`
	FontSize    int    `json:"font_size" mapstructure:"font_size"`
	PageSize    string `json:"page_size" mapstructure:"page_size"`
	Orientation string `json:"orientation" mapstructure:"orientation"`
}

// Default returns the preferences used when nothing was saved yet
func Default() Preferences {
	return Preferences{
		FontName:    "Helvetica",
		FontPath:    "",
		FontSize:    10,
		PageSize:    PageA4,
		Orientation: Portrait,
	}
}

// PageSizes lists the accepted page size keys
func PageSizes() []string {
	out := make([]string, len(pageSizes))
	copy(out, pageSizes)
	return out
}

// NormalizeOrientation maps legacy keys onto portrait/landscape
func NormalizeOrientation(key string) string {
	if v, ok := orientationAliases[key]; ok {
		return v
	}
	return strings.ToLower(strings.TrimSpace(key))
}

// Validate checks every key; failures are ConfigErrors
func (p Preferences) Validate() error {
	if strings.TrimSpace(p.FontName) == "" {
		return apperr.NewConfigError("font_name", errors.New("font name is required"))
	}
	if p.FontSize <= 0 {
		return apperr.NewConfigError("font_size", fmt.Errorf("font size must be a positive number, got %d", p.FontSize))
	}

	known := false
	for _, s := range pageSizes {
		if s == p.PageSize {
			known = true
			break
		}
	}
	if !known {
		return apperr.NewConfigError("page_size", fmt.Errorf("unknown page size %q", p.PageSize))
	}

	switch NormalizeOrientation(p.Orientation) {
	case Portrait, Landscape:
	default:
		return apperr.NewConfigError("orientation", fmt.Errorf("unknown orientation %q", p.Orientation))
	}
	return nil
}
