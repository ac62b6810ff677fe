package record

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAbsent is returned when a numeric value is requested from an absent field
	ErrAbsent = errors.New("field is absent")

	// ErrNotNumeric is returned when a field cannot be coerced to a number
	ErrNotNumeric = errors.New("field is not numeric")
)

// Kind tags the value held by a Field
type Kind int

const (
	KindAbsent Kind = iota
	KindDate
	KindInteger
	KindFloat
	KindText
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindDate:
		return "date"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTable:
		return "table"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field is one named value of a Record. The zero value is an absent field.
type Field struct {
	kind Kind
	raw  string
	i    int64
	f    float64
	t    time.Time
	rows []Record
}

// Absent returns an absent field
func Absent() Field { return Field{} }

// Date returns a date field; raw is the text as received
func Date(t time.Time, raw string) Field {
	return Field{kind: KindDate, t: t, raw: raw}
}

// Integer returns an integer field
func Integer(v int64, raw string) Field {
	return Field{kind: KindInteger, i: v, raw: raw}
}

// Float returns a floating point field
func Float(v float64, raw string) Field {
	return Field{kind: KindFloat, f: v, raw: raw}
}

// Text returns a text field
func Text(s string) Field {
	return Field{kind: KindText, raw: s}
}

// Table returns a nested sequence of sub-records; raw is the source JSON
func Table(rows []Record, raw string) Field {
	return Field{kind: KindTable, rows: rows, raw: raw}
}

// Kind returns the tag of the field
func (f Field) Kind() Kind { return f.kind }

// IsAbsent reports whether the field carries no value
func (f Field) IsAbsent() bool { return f.kind == KindAbsent }

// Raw returns the value as it was received from the source
func (f Field) Raw() string { return f.raw }

// Time returns the date value; only meaningful for KindDate
func (f Field) Time() time.Time { return f.t }

// Int64Value returns the integer value; only meaningful for KindInteger
func (f Field) Int64Value() int64 { return f.i }

// Float64Value returns the float value; only meaningful for KindFloat
func (f Field) Float64Value() float64 { return f.f }

// Rows returns the sub-records; only meaningful for KindTable
func (f Field) Rows() []Record { return f.rows }

// Int coerces the field to an integer. Fractions are truncated toward zero.
func (f Field) Int() (int64, error) {
	switch f.kind {
	case KindAbsent:
		return 0, ErrAbsent
	case KindInteger:
		return f.i, nil
	case KindFloat:
		if math.IsNaN(f.f) || math.IsInf(f.f, 0) {
			return 0, fmt.Errorf("%w: %v", ErrNotNumeric, f.f)
		}
		return decimal.NewFromFloat(f.f).Truncate(0).IntPart(), nil
	case KindText:
		d, err := decimal.NewFromString(strings.TrimSpace(f.raw))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, f.raw)
		}
		return d.Truncate(0).IntPart(), nil
	default:
		return 0, fmt.Errorf("%w: %s value", ErrNotNumeric, f.kind)
	}
}
