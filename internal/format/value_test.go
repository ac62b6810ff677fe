package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		field record.Field
		want  string
	}{
		{name: "absent", field: record.Absent(), want: ""},
		{
			name:  "date drops time of day",
			field: record.Date(time.Date(2024, 3, 9, 17, 30, 0, 0, time.UTC), "2024-03-09T17:30:00Z"),
			want:  "2024-03-09",
		},
		{name: "integer", field: record.Integer(1234567, "1234567"), want: "1234567"},
		{name: "negative integer", field: record.Integer(-42, "-42"), want: "-42"},
		{name: "float without fraction", field: record.Float(1000.0, "1000.0"), want: "1000"},
		{name: "float with fraction", field: record.Float(12.5, "12.5"), want: "12.5"},
		{name: "float NaN", field: record.Float(math.NaN(), "NaN"), want: ""},
		{name: "text", field: record.Text("ボルト M6"), want: "ボルト M6"},
		{name: "table falls back to raw", field: record.Table(nil, `[{"id":"1"}]`), want: `[{"id":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.field))
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "full-width digits", in: "１２３", want: "123"},
		{name: "full-width latin", in: "ＡＢＣ", want: "ABC"},
		{name: "half-width katakana", in: "ｶﾞｷﾞ", want: "ガギ"},
		{name: "ascii untouched", in: "plain text", want: "plain text"},
		{name: "circled number", in: "①", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Canonicalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Canonicalize(got), "canonicalization must be idempotent")
		})
	}
}

func TestCell(t *testing.T) {
	assert.Equal(t, "1000", Cell(record.Text("１０００")))
	assert.Equal(t, "", Cell(record.Absent()))
}
