package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

func TestSheetRenderer_Render(t *testing.T) {
	doc := composeParts(t, 2, preferences.Default())

	out, err := NewSheetRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"code", "name", "qty", "QR"}, rows[0])
	assert.Equal(t, []string{"A-0", "Bolt", "1"}, rows[1])
	assert.Equal(t, []string{"A-1", "Bolt", "2"}, rows[2])

	pics, err := f.GetPictures(sheetName, "D2")
	require.NoError(t, err)
	assert.Len(t, pics, 1)
}
