package invoice

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
)

func lineItem(name string, price, qty, amount record.Field) record.Record {
	r := record.New()
	r.Set("name", record.Text(name))
	r.Set("price", price)
	r.Set("qty", qty)
	r.Set("amount", amount)
	return r
}

func sampleInvoice() (record.Record, record.Field) {
	items := []record.Record{
		lineItem("Bolt M6", record.Integer(500, "500"), record.Integer(2, "2"), record.Integer(1000, "1000")),
		lineItem("Washer", record.Integer(100, "100"), record.Integer(1, "1"), record.Integer(100, "100")),
	}

	header := record.New()
	header.Set("invoice_no", record.Text("INV-001"))
	header.Set("invoice_date", record.Date(time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), "2021-04-01"))
	header.Set("customer", record.Text("ACME Corp"))
	header.Set("staff", record.Text("Tanaka"))
	header.Set("amount_sum", record.Integer(1000, "1000"))
	header.Set("vat", record.Integer(100, "100"))
	header.Set("total", record.Integer(1100, "1100"))
	sub := record.Table(items, "[]")
	header.Set("subdata", sub)
	return header, sub
}

func TestComposer_Compose(t *testing.T) {
	header, items := sampleInvoice()
	c := NewComposer(DefaultFields(), nil)

	doc, err := c.Compose(header, items)
	require.NoError(t, err)

	assert.Equal(t, "INV-001", doc.Number)
	assert.Equal(t, "令和3年4月1日", doc.DateLine)
	assert.Equal(t, Title, doc.Title)
	assert.Equal(t, "ACME Corp", doc.Customer)
	assert.Equal(t, "担当者：Tanaka 様", doc.Attention)

	assert.Equal(t, []string{"本体価格", "消費税", "合計金額"}, doc.Summary.Header)
	assert.Equal(t, [][]string{{"¥1,000", "¥100", "¥1,100"}}, doc.Summary.Rows)

	assert.Equal(t, []string{"商品名", "単価", "数量", "単位", "小計"}, doc.Items.Header)
	assert.Equal(t, [][]string{
		{"Bolt M6", "¥500", "2", "個", "¥1,000"},
		{"Washer", "¥100", "1", "個", "¥100"},
	}, doc.Items.Rows)

	assert.Equal(t, DefaultFooter, doc.Footer)
	assert.Equal(t, NotesLabel, doc.Notes)
	assert.Equal(t, "invoice_INV-001.pdf", doc.FileName())
}

func TestComposer_TruncatesAmounts(t *testing.T) {
	header, items := sampleInvoice()
	header.Set("total", record.Float(1100.99, "1100.99"))
	header.Set("vat", record.Text(" 100.5 "))

	doc, err := NewComposer(DefaultFields(), nil).Compose(header, items)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"¥1,000", "¥100", "¥1,100"}}, doc.Summary.Rows)
}

func TestComposer_CustomFooter(t *testing.T) {
	header, items := sampleInvoice()
	footer := []string{"Example Ltd.", "Tel: 000"}

	doc, err := NewComposer(DefaultFields(), footer).Compose(header, items)
	require.NoError(t, err)
	assert.Equal(t, footer, doc.Footer)

	footer[0] = "changed"
	assert.Equal(t, "Example Ltd.", doc.Footer[0])
}

func TestComposer_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(h *record.Record) record.Field
		wantField string
	}{
		{
			name: "missing customer",
			mutate: func(h *record.Record) record.Field {
				h.Set("customer", record.Absent())
				return h.Get("subdata")
			},
			wantField: "customer",
		},
		{
			name: "unparsable date",
			mutate: func(h *record.Record) record.Field {
				h.Set("invoice_date", record.Text("April 1st"))
				return h.Get("subdata")
			},
			wantField: "invoice_date",
		},
		{
			name: "non numeric total",
			mutate: func(h *record.Record) record.Field {
				h.Set("total", record.Text("n/a"))
				return h.Get("subdata")
			},
			wantField: "total",
		},
		{
			name: "non numeric quantity",
			mutate: func(h *record.Record) record.Field {
				rows := h.Get("subdata").Rows()
				rows[1].Set("qty", record.Text("two"))
				return record.Table(rows, "[]")
			},
			wantField: "qty[1]",
		},
		{
			name: "line items missing",
			mutate: func(h *record.Record) record.Field {
				return record.Absent()
			},
			wantField: "subdata",
		},
		{
			name: "line items not a table",
			mutate: func(h *record.Record) record.Field {
				return record.Text("Bolt M6")
			},
			wantField: "subdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, _ := sampleInvoice()
			items := tt.mutate(&header)

			doc, err := NewComposer(DefaultFields(), nil).Compose(header, items)
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrRender))

			var renderErr *apperr.RenderError
			require.True(t, errors.As(err, &renderErr))
			assert.Equal(t, tt.wantField, renderErr.Field)
		})
	}
}
