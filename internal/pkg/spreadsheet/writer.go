package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a generated workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
	// AmountColumns are zero-based column indexes rendered with a two-decimal number format.
	AmountColumns []int
}

// ContentTypeXLSX is the MIME type of workbooks produced by WriteWorkbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// amountFormat is excelize's built-in "#,##0.00".
const amountFormat = 4

// WriteWorkbook renders sheets into an .xlsx document. decimal.Decimal cells are written as numbers.
func WriteWorkbook(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("at least one sheet is required")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle, amountStyle); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, amountStyle int) error {
	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if len(sheet.Header) > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Header))
		if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
	}

	for r, row := range sheet.Rows {
		values := make([]any, len(row))
		for c, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				values[c] = d.InexactFloat64()
				continue
			}
			values[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if len(sheet.Rows) > 0 {
		for _, col := range sheet.AmountColumns {
			name, err := excelize.ColumnNumberToName(col + 1)
			if err != nil {
				return err
			}
			bottom := fmt.Sprintf("%s%d", name, len(sheet.Rows)+1)
			if err := f.SetCellStyle(sheet.Name, name+"2", bottom, amountStyle); err != nil {
				return fmt.Errorf("failed to style amount column: %w", err)
			}
		}
	}
	return nil
}
