package invoice

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
	"github.com/kobayashi-mfg/kintone-printer/internal/domain/record"
	"github.com/kobayashi-mfg/kintone-printer/internal/format"
)

var errNotSubtable = errors.New("line items must be a subtable")

// Composer builds invoice documents from kintone records
type Composer struct {
	fields Fields
	footer []string
}

// NewComposer creates a composer. A nil footer prints DefaultFooter.
func NewComposer(fields Fields, footer []string) *Composer {
	if len(footer) == 0 {
		footer = DefaultFooter
	}
	return &Composer{fields: fields, footer: footer}
}

// Fields returns the field codes the composer reads
func (c *Composer) Fields() Fields {
	return c.fields
}

// Compose lays out the invoice for header and its line items. Amounts are
// truncated to whole yen. It does not check that total = subtotal + tax.
func (c *Composer) Compose(header record.Record, lineItems record.Field) (*Document, error) {
	number, err := c.requiredText(header, c.fields.Number)
	if err != nil {
		return nil, err
	}

	dateField, err := c.required(header, c.fields.Date)
	if err != nil {
		return nil, err
	}
	dateLine, err := format.ToWareki(format.Normalize(dateField))
	if err != nil {
		return nil, apperr.NewRenderError(c.fields.Date, err)
	}

	customer, err := c.requiredText(header, c.fields.Customer)
	if err != nil {
		return nil, err
	}
	staff, err := c.requiredText(header, c.fields.Staff)
	if err != nil {
		return nil, err
	}

	summary := make([]string, 0, 3)
	for _, code := range []string{c.fields.Subtotal, c.fields.Tax, c.fields.Total} {
		amount, err := c.amount(header.Get(code), code)
		if err != nil {
			return nil, err
		}
		summary = append(summary, format.Yen(amount))
	}

	items, err := c.itemRows(lineItems)
	if err != nil {
		return nil, err
	}

	footer := make([]string, len(c.footer))
	copy(footer, c.footer)

	return &Document{
		Number:    number,
		DateLine:  dateLine,
		Title:     Title,
		Customer:  customer,
		Attention: fmt.Sprintf(attentionForm, staff),
		Summary: Table{
			Header: append([]string(nil), summaryHeader...),
			Rows:   [][]string{summary},
		},
		Items: Table{
			Header: append([]string(nil), itemsHeader...),
			Rows:   items,
		},
		Footer: footer,
		Notes:  NotesLabel,
	}, nil
}

func (c *Composer) itemRows(lineItems record.Field) ([][]string, error) {
	if lineItems.IsAbsent() {
		return nil, apperr.NewRenderError(c.fields.LineItems, record.ErrAbsent)
	}
	if lineItems.Kind() != record.KindTable {
		return nil, apperr.NewRenderError(c.fields.LineItems, errNotSubtable)
	}

	rows := make([][]string, 0, len(lineItems.Rows()))
	for i, item := range lineItems.Rows() {
		price, err := c.amount(item.Get(c.fields.ItemPrice), itemField(c.fields.ItemPrice, i))
		if err != nil {
			return nil, err
		}
		qty, err := c.amount(item.Get(c.fields.ItemQuantity), itemField(c.fields.ItemQuantity, i))
		if err != nil {
			return nil, err
		}
		subtotal, err := c.amount(item.Get(c.fields.ItemAmount), itemField(c.fields.ItemAmount, i))
		if err != nil {
			return nil, err
		}

		rows = append(rows, []string{
			format.Normalize(item.Get(c.fields.ItemName)),
			format.Yen(price),
			strconv.FormatInt(qty, 10),
			UnitLabel,
			format.Yen(subtotal),
		})
	}
	return rows, nil
}

func (c *Composer) required(r record.Record, code string) (record.Field, error) {
	f, ok := r.Lookup(code)
	if !ok || f.IsAbsent() {
		return record.Field{}, apperr.NewRenderError(code, record.ErrAbsent)
	}
	return f, nil
}

func (c *Composer) requiredText(r record.Record, code string) (string, error) {
	f, err := c.required(r, code)
	if err != nil {
		return "", err
	}
	return format.Normalize(f), nil
}

func (c *Composer) amount(f record.Field, name string) (int64, error) {
	v, err := f.Int()
	if err != nil {
		return 0, apperr.NewRenderError(name, err)
	}
	return v, nil
}

func itemField(code string, row int) string {
	return fmt.Sprintf("%s[%d]", code, row)
}
