package entity

// Generation kinds
const (
	KindInvoice = "INVOICE"
	KindReport  = "REPORT"
)

// Output formats
const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)
