package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit"
	"github.com/kobayashi-mfg/kintone-printer/internal/pdfkit/pdftest"
	"github.com/kobayashi-mfg/kintone-printer/internal/preferences"
)

func composeParts(t *testing.T, n int, prefs preferences.Preferences) *Document {
	t.Helper()
	records := make([]record.Record, n)
	for i := range records {
		records[i] = part(fmt.Sprintf("A-%d", i), "Bolt", record.Integer(int64(i+1), ""))
	}
	specs := []ColumnSpec{
		{Name: "code", Display: true, Encode: true},
		{Name: "name", Display: true},
		{Name: "qty", Display: true},
	}
	doc, err := NewComposer(NewQREncoder(), zap.NewNop()).Compose(records, specs, prefs)
	require.NoError(t, err)
	return doc
}

func TestRenderer_Render(t *testing.T) {
	doc := composeParts(t, 3, preferences.Default())

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, 1, pdftest.PageCount(out))

	content := pdftest.Content(t, out)
	for _, text := range []string{"code", "name", "qty", QRHeader, "A-0", "A-2", "Bolt", "3"} {
		assert.True(t, bytes.Contains(content, pdftest.CoreText(text)), "missing %q", text)
	}
}

func TestRenderer_HeaderRepeatedOnEveryPage(t *testing.T) {
	prefs := preferences.Default()
	prefs.PageSize = preferences.PageA3
	prefs.Orientation = "横"

	doc := composeParts(t, 25, prefs)
	assert.Equal(t, preferences.Landscape, doc.Orientation)

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)

	pages := pdftest.PageCount(out)
	require.Greater(t, pages, 1)

	content := pdftest.Content(t, out)
	assert.Equal(t, pages, bytes.Count(content, pdftest.CoreText(QRHeader)))
	assert.True(t, bytes.Contains(content, pdftest.CoreText("A-24")))
}

func TestRenderer_EmptyReport(t *testing.T) {
	doc := composeParts(t, 0, preferences.Default())

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, pdftest.PageCount(out))
	assert.True(t, bytes.Contains(pdftest.Content(t, out), pdftest.CoreText(QRHeader)))
}

func TestRenderer_BuiltInFontEncodesLatin1(t *testing.T) {
	doc := composeParts(t, 1, preferences.Default())
	doc.Rows[0].Cells[1] = "¥1,000 café"

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(pdftest.Content(t, out), pdftest.CoreText("\xa51,000 caf\xe9")))
}

func TestRenderer_BuiltInFontRejectsJapanese(t *testing.T) {
	doc := composeParts(t, 1, preferences.Default())
	doc.Rows[0].Cells[1] = "六角ボルト"

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	assert.Nil(t, out)
	require.True(t, errors.Is(err, apperr.ErrConfig))

	var cfgErr *apperr.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "font_path", cfgErr.Key)
	assert.Equal(t, "六角ボルト", doc.Rows[0].Cells[1])
}

func TestRenderer_TrueTypeFontDrawsJapanese(t *testing.T) {
	doc := composeParts(t, 1, preferences.Default())
	doc.Header[1] = "品名"
	doc.Rows[0].Cells[1] = "六角ボルト"
	doc.Font = pdfkit.Font{Family: "DejaVu", Path: pdftest.FontPath(t)}

	out, err := NewRenderer(zap.NewNop()).Render(doc)
	require.NoError(t, err)

	content := pdftest.Content(t, out)
	assert.True(t, bytes.Contains(content, pdftest.UnicodeText("品名")))
	assert.True(t, bytes.Contains(content, pdftest.UnicodeText("六角ボルト")))
}

func TestRenderer_FontLoadFailure(t *testing.T) {
	doc := composeParts(t, 1, preferences.Default())
	doc.Font = pdfkit.Font{Family: "Missing", Path: "/nonexistent/font.ttf"}

	_, err := NewRenderer(zap.NewNop()).Render(doc)
	assert.True(t, errors.Is(err, apperr.ErrConfig))
}

func TestColumnWidths_ShrinkToPage(t *testing.T) {
	doc := &Document{
		Header:   []string{"a", "b", QRHeader},
		Rows:     []Row{{Cells: []string{string(bytes.Repeat([]byte("x"), 400)), "y"}}},
		Font:     pdfkit.Font{Family: "Helvetica"},
		FontSize: 10,
		Paper:    pdfkit.A4Size,
	}
	pdf := pdfkit.NewDocument(doc.Paper, preferences.Portrait)
	pdf.SetFont("Helvetica", "", 10)

	avail := pdfkit.A4Size.Width - 2*pageMargin
	widths := columnWidths(pdf, doc, avail)
	require.Len(t, widths, 3)
	assert.InDelta(t, avail, pdfkit.TableWidth(widths), 0.01)
	assert.Equal(t, qrSize+2*cellPadding, widths[2])
}
