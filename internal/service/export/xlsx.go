// Package export writes dashboard views as spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/ougirez/wagedash/internal/domain"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSX writes the table of a view as a single sheet workbook with a bold,
// frozen header row.
func XLSX(w io.Writer, sheet string, t domain.Tabular) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("f.SetSheetName: %w", err)
	}

	header, rows := t.Table()

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("f.SetSheetRow, header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("f.NewStyle: %w", err)
	}
	if err = f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("f.SetRowStyle: %w", err)
	}

	if len(header) > 0 {
		last, err := excelize.ColumnNumberToName(len(header))
		if err != nil {
			return fmt.Errorf("excelize.ColumnNumberToName: %w", err)
		}
		if err = f.SetColWidth(sheet, "A", last, 18); err != nil {
			return fmt.Errorf("f.SetColWidth: %w", err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName: %w", err)
		}
		values := []interface{}(row)
		if err = f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("f.SetSheetRow, row-%d: %w", i+2, err)
		}
	}

	if err = f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("f.SetPanes: %w", err)
	}

	if _, err = f.WriteTo(w); err != nil {
		return fmt.Errorf("f.WriteTo: %w", err)
	}
	return nil
}
