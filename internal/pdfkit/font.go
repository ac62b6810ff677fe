package pdfkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

// built into every PDF reader, usable without a font file
var coreFonts = map[string]bool{
	"helvetica":    true,
	"arial":        true,
	"courier":      true,
	"times":        true,
	"symbol":       true,
	"zapfdingbats": true,
}

// Font is a font family and the TrueType file backing it. An empty Path
// means a core font.
type Font struct {
	Family string
	Path   string
}

// IsCore reports whether the font needs no file
func (f Font) IsCore() bool {
	return f.Path == "" && coreFonts[strings.ToLower(f.Family)]
}

// ResolveFont checks that the font can be located before any drawing starts.
func ResolveFont(family, path string) (Font, error) {
	family = strings.TrimSpace(family)
	path = strings.TrimSpace(path)

	if family == "" {
		return Font{}, apperr.NewConfigError("font_name", errors.New("font name is required"))
	}

	if path == "" {
		if !coreFonts[strings.ToLower(family)] {
			return Font{}, apperr.NewConfigError("font_path",
				fmt.Errorf("font %q is not a built-in font and no font file was given", family))
		}
		return Font{Family: family}, nil
	}

	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		return Font{}, apperr.NewConfigError("font_path",
			fmt.Errorf("font collections are not supported, use a .ttf file: %s", path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return Font{}, apperr.NewConfigError("font_path", fmt.Errorf("font file does not exist: %s", path))
	}
	if info.IsDir() {
		return Font{}, apperr.NewConfigError("font_path", fmt.Errorf("font path is a directory: %s", path))
	}

	return Font{Family: family, Path: path}, nil
}

// Register makes the font available to pdf. A file that gofpdf cannot
// parse is reported as a ConfigError.
func (f Font) Register(pdf *gofpdf.Fpdf) (err error) {
	if f.Path == "" {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = apperr.NewConfigError("font_path", fmt.Errorf("failed to load font %s: %v", f.Path, r))
		}
	}()

	pdf.AddUTF8Font(f.Family, "", f.Path)
	if pdf.Err() {
		return apperr.NewConfigError("font_path", fmt.Errorf("failed to load font %s: %w", f.Path, pdf.Error()))
	}
	return nil
}

// Encode converts s into the bytes the font draws. TrueType fonts take UTF-8
// as is; core fonts take cp1252, and a rune outside it has no glyph there,
// which is a ConfigError.
func (f Font) Encode(s string) (string, error) {
	if f.Path != "" {
		return s, nil
	}
	out, err := charmap.Windows1252.NewEncoder().String(s)
	if err != nil {
		return "", apperr.NewConfigError("font_path",
			fmt.Errorf("built-in font %q cannot draw %q, set a TrueType font file", f.Family, s))
	}
	return out, nil
}

// EncodeAll encodes every string of texts in place
func (f Font) EncodeAll(texts []string) error {
	for i, s := range texts {
		out, err := f.Encode(s)
		if err != nil {
			return err
		}
		texts[i] = out
	}
	return nil
}
