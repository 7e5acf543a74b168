package tabular

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"companyscout/internal/fileutil"
)

const sheetName = "data"

// WriteXLSX writes table to a single-sheet workbook with a bold header row and
// an auto-filter over the data range.
func WriteXLSX(path string, table *Table) error {
	if len(table.Header) == 0 {
		return fmt.Errorf("write xlsx: table has no columns")
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, header := range table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("write header %q: %w", header, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(table.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for r, row := range table.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStr(sheetName, cell, value); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	for col := range table.Header {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, 24); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	bottomRight, err := excelize.CoordinatesToCellName(len(table.Header), len(table.Rows)+1)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheetName, "A1:"+bottomRight, nil); err != nil {
		return fmt.Errorf("set auto filter: %w", err)
	}

	err = fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
