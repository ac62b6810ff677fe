package report

import (
	"strings"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

// ColumnSpec holds the per-column flags of the report. Display prints the
// column, Encode appends it to the row's QR payload and SuppressZero drops
// rows whose value is numerically zero.
type ColumnSpec struct {
	Name         string `json:"name"`
	Display      bool   `json:"display"`
	Encode       bool   `json:"encode"`
	SuppressZero bool   `json:"suppress_zero"`
}

// BuildSpecs flags columns by name, keeping the order of columns. A name
// that is not one of columns is a ValidationError.
func BuildSpecs(columns, display, encode, suppress []string) ([]ColumnSpec, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c] = true
	}

	flags := func(names []string) (map[string]bool, error) {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if !known[n] {
				return nil, apperr.NewValidationError("unknown column %q", n)
			}
			set[n] = true
		}
		return set, nil
	}

	displaySet, err := flags(display)
	if err != nil {
		return nil, err
	}
	encodeSet, err := flags(encode)
	if err != nil {
		return nil, err
	}
	suppressSet, err := flags(suppress)
	if err != nil {
		return nil, err
	}

	specs := make([]ColumnSpec, 0, len(columns))
	for _, c := range columns {
		specs = append(specs, ColumnSpec{
			Name:         c,
			Display:      displaySet[c],
			Encode:       encodeSet[c],
			SuppressZero: suppressSet[c],
		})
	}
	return specs, nil
}

// DisplayNames returns the names of the display columns in order
func DisplayNames(specs []ColumnSpec) []string {
	var names []string
	for _, s := range specs {
		if s.Display {
			names = append(names, s.Name)
		}
	}
	return names
}
