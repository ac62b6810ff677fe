package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kobayashi-mfg/kintone-printer/internal/domain/apperr"
)

const (
	sheetName     = "kintone"
	qrRowHeight   = 60.0 // points
	qrColumnWidth = 12.0 // characters
	pixelsPerPt   = 96.0 / 72.0
)

// SheetRenderer writes report documents as xlsx workbooks with the same
// rows and QR images as the PDF.
type SheetRenderer struct {
	logger *zap.Logger
}

// NewSheetRenderer creates a spreadsheet renderer
func NewSheetRenderer(logger *zap.Logger) *SheetRenderer {
	return &SheetRenderer{logger: logger}
}

// Render returns the workbook bytes for doc
func (s *SheetRenderer) Render(doc *Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, apperr.NewRenderError("", fmt.Errorf("failed to name sheet: %w", err))
	}

	if err := s.writeHeader(f, doc.Header); err != nil {
		return nil, apperr.NewRenderError("", err)
	}

	qrCol := len(doc.Header)
	for i, row := range doc.Rows {
		excelRow := i + 2
		cell, err := excelize.CoordinatesToCellName(1, excelRow)
		if err != nil {
			return nil, apperr.NewRenderError("", err)
		}
		values := make([]interface{}, len(row.Cells))
		for j, v := range row.Cells {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, apperr.NewRenderError("", fmt.Errorf("failed to write row %d: %w", excelRow, err))
		}

		if row.QR == nil {
			continue
		}
		if err := s.addCode(f, qrCol, excelRow, row.QR); err != nil {
			return nil, apperr.NewRenderError(QRHeader, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("Failed to write workbook", zap.Int("rows", len(doc.Rows)), zap.Error(err))
		return nil, apperr.NewRenderError("", err)
	}

	s.logger.Debug("Rendered report workbook",
		zap.Int("rows", len(doc.Rows)),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

func (s *SheetRenderer) writeHeader(f *excelize.File, header []string) error {
	values := make([]interface{}, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &values); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	// the QR column header stays unfilled
	if len(header) > 1 {
		last, err := excelize.CoordinatesToCellName(len(header)-1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", last, style); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	qrCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheetName, qrCol, qrCol, qrColumnWidth)
}

// addCode places png in the QR column of row, scaled to the row height
func (s *SheetRenderer) addCode(f *excelize.File, col, row int, png []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return fmt.Errorf("failed to read QR image: %w", err)
	}

	if err := f.SetRowHeight(sheetName, row, qrRowHeight); err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	scale := qrRowHeight * pixelsPerPt / float64(cfg.Height)
	return f.AddPictureFromBytes(sheetName, cell, &excelize.Picture{
		Extension: ".png",
		File:      png,
		Format: &excelize.GraphicOptions{
			ScaleX:          scale,
			ScaleY:          scale,
			LockAspectRatio: true,
			Positioning:     "oneCell",
		},
	})
}
