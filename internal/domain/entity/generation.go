package entity

import "time"

// Generation records one artifact that was written successfully
type Generation struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Format    string    `json:"format"`
	FilePath  string    `json:"file_path"`
	Filter    string    `json:"filter"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordSummary is the line shown when listing invoices to choose from
type RecordSummary struct {
	Number   string `json:"invoice_no"`
	Customer string `json:"customer"`
	Date     string `json:"invoice_date"`
}
