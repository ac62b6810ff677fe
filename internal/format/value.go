// Package format turns record fields into print-ready text.
package format

import (
	"math"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
)

// Normalize renders a field as its canonical display string.
func Normalize(f record.Field) string {
	switch f.Kind() {
	case record.KindAbsent:
		return ""
	case record.KindDate:
		return f.Time().Format("2006-01-02")
	case record.KindInteger:
		return strconv.FormatInt(f.Int64Value(), 10)
	case record.KindFloat:
		return formatFloat(f.Float64Value())
	case record.KindText, record.KindTable:
		return f.Raw()
	default:
		return f.Raw()
	}
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if !math.IsInf(v, 0) && v == math.Trunc(v) && math.Abs(v) < 1e18 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Canonicalize applies NFKC so full-width and combining variants collapse
// before the text reaches the font rasterizer.
func Canonicalize(s string) string {
	return norm.NFKC.String(s)
}

// Cell is Normalize followed by Canonicalize, the form used by report cells.
func Cell(f record.Field) string {
	return Canonicalize(Normalize(f))
}
