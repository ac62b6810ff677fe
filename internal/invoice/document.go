// Package invoice composes and renders the fixed-layout invoice of one
// kintone record.
package invoice

// Fixed texts printed on every invoice
const (
	Title         = "御請求書"
	UnitLabel     = "個"
	NotesLabel    = "備考欄"
	attentionForm = "担当者：%s 様"
)

var (
	summaryHeader = []string{"本体価格", "消費税", "合計金額"}
	itemsHeader   = []string{"商品名", "単価", "数量", "単位", "小計"}
)

// DefaultFooter is the issuer block printed under the line items
var DefaultFooter = []string{
	"Kobayashi Manufacturing Co., Ltd.",
	"11-15, The Jar of Records, Ryuji Sho",
	"Tel: 075-9547200",
}

// Fields names the kintone field codes an invoice is read from
type Fields struct {
	Number    string `mapstructure:"number"`
	Date      string `mapstructure:"date"`
	Customer  string `mapstructure:"customer"`
	Staff     string `mapstructure:"staff"`
	Subtotal  string `mapstructure:"subtotal"`
	Tax       string `mapstructure:"tax"`
	Total     string `mapstructure:"total"`
	LineItems string `mapstructure:"line_items"`

	ItemName     string `mapstructure:"item_name"`
	ItemPrice    string `mapstructure:"item_price"`
	ItemQuantity string `mapstructure:"item_quantity"`
	ItemAmount   string `mapstructure:"item_amount"`
}

// DefaultFields returns the field codes of the invoice app
func DefaultFields() Fields {
	return Fields{
		Number:       "invoice_no",
		Date:         "invoice_date",
		Customer:     "customer",
		Staff:        "staff",
		Subtotal:     "amount_sum",
		Tax:          "vat",
		Total:        "total",
		LineItems:    "subdata",
		ItemName:     "name",
		ItemPrice:    "price",
		ItemQuantity: "qty",
		ItemAmount:   "amount",
	}
}

// Table is a header row followed by data rows
type Table struct {
	Header []string
	Rows   [][]string
}

// Document is a composed invoice, ready to be drawn
type Document struct {
	Number    string
	DateLine  string
	Title     string
	Customer  string
	Attention string
	Summary   Table
	Items     Table
	Footer    []string
	Notes     string
}

// FileName returns the output file name of the invoice
func (d *Document) FileName() string {
	return "invoice_" + d.Number + ".pdf"
}
