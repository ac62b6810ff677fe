package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWareki(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{name: "first day of reiwa", date: "2019-05-01", want: "令和1年5月1日"},
		{name: "reiwa boundary year before may", date: "2019-01-01", want: "令和1年1月1日"},
		{name: "later reiwa", date: "2024-12-25", want: "令和6年12月25日"},
		{name: "first year of heisei", date: "1989-01-08", want: "平成1年1月8日"},
		{name: "last heisei year", date: "2018-12-31", want: "平成30年12月31日"},
		{name: "gregorian fallback", date: "1988-12-31", want: "1988年12月31日"},
		{name: "empty", date: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToWareki(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToWareki_InvalidInput(t *testing.T) {
	for _, in := range []string{"2019/05/01", "2019-05", "abcd-01-02"} {
		_, err := ToWareki(in)
		assert.Error(t, err, in)
	}
}

func TestYen(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "¥0"},
		{amount: 100, want: "¥100"},
		{amount: 1000, want: "¥1,000"},
		{amount: 1234567, want: "¥1,234,567"},
		{amount: -1234, want: "¥-1,234"},
		{amount: -999, want: "¥-999"},
		{amount: math.MaxInt64, want: "¥9,223,372,036,854,775,807"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Yen(tt.amount))
	}
}
