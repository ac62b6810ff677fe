package report

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/format"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

// Composer builds report documents from a record set
type Composer struct {
	encoder CodeEncoder
	logger  *zap.Logger
}

// NewComposer creates a composer that draws QR codes with encoder
func NewComposer(encoder CodeEncoder, logger *zap.Logger) *Composer {
	return &Composer{encoder: encoder, logger: logger}
}

// Compose applies the column flags to records. Nothing is drawn yet, but
// the preferences and the font file are checked here so a bad setup fails
// before any output exists.
func (c *Composer) Compose(records []record.Record, specs []ColumnSpec, prefs preferences.Preferences) (*Document, error) {
	display := DisplayNames(specs)
	if len(display) == 0 {
		return nil, apperr.NewValidationError("select at least one column to display")
	}

	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	font, err := pdfkit.ResolveFont(prefs.FontName, prefs.FontPath)
	if err != nil {
		return nil, err
	}
	paper, err := pdfkit.LookupPaperSize(prefs.PageSize)
	if err != nil {
		return nil, apperr.NewConfigError("page_size", err)
	}

	doc := &Document{
		Header:      append(display, QRHeader),
		Font:        font,
		FontSize:    float64(prefs.FontSize),
		Paper:       paper,
		Orientation: preferences.NormalizeOrientation(prefs.Orientation),
	}

	for _, r := range records {
		if suppressed(r, specs) {
			doc.Skipped++
			continue
		}

		row, err := c.composeRow(r, specs)
		if err != nil {
			return nil, err
		}
		doc.Rows = append(doc.Rows, row)
	}

	c.logger.Debug("Composed report",
		zap.Int("records", len(records)),
		zap.Int("rows", len(doc.Rows)),
		zap.Int("skipped", doc.Skipped),
		zap.Strings("columns", display))

	return doc, nil
}

func (c *Composer) composeRow(r record.Record, specs []ColumnSpec) (Row, error) {
	var row Row
	var parts []string
	for _, s := range specs {
		if !s.Display && !s.Encode {
			continue
		}
		text := format.Cell(r.Get(s.Name))
		if s.Display {
			row.Cells = append(row.Cells, text)
		}
		if s.Encode {
			parts = append(parts, text)
		}
	}

	row.Payload = strings.TrimSpace(strings.Join(parts, ","))
	if row.Payload == "" {
		return row, nil
	}

	png, err := c.encoder.Encode(row.Payload)
	if err != nil {
		return Row{}, apperr.NewRenderError(QRHeader, err)
	}
	row.QR = png
	return row, nil
}

// suppressed reports whether any hide-zero column of r holds a zero.
func suppressed(r record.Record, specs []ColumnSpec) bool {
	for _, s := range specs {
		if s.SuppressZero && isZero(r.Get(s.Name)) {
			return true
		}
	}
	return false
}

// isZero reports whether f parses as the number zero. Values that do not
// parse never count as zero.
func isZero(f record.Field) bool {
	switch f.Kind() {
	case record.KindAbsent:
		return false
	case record.KindInteger:
		return f.Int64Value() == 0
	case record.KindFloat:
		return f.Float64Value() == 0
	}

	text := strings.TrimSpace(format.Canonicalize(f.Raw()))
	if hexLiteral(text) {
		return false
	}
	v, err := strconv.ParseFloat(text, 64)
	return err == nil && v == 0
}

// hexLiteral reports whether s is written with a 0x prefix, which
// strconv.ParseFloat accepts but a decimal quantity never uses.
func hexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
