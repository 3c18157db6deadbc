package sequence

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a table from a workbook sheet; the first row is the
// header. An empty sheet name selects the first sheet.
func ReadXLSX(r io.Reader, sheet string) (_ *Table, _err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to open the workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && _err == nil {
			_err = fmt.Errorf("unable to close the workbook: %w", err)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("the workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("unable to get the rows of sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}
	return tableFromRows(rows[0], rows[1:])
}

// WriteXLSX writes the table into a new workbook with a single sheet. NaN
// values are written as the "NaN" text, so trailing rows of missing values
// are not dropped by spreadsheet readers.
func (t *Table) WriteXLSX(w io.Writer, sheet string) (_err error) {
	if err := t.Validate(); err != nil {
		return err
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil && _err == nil {
			_err = fmt.Errorf("unable to close the workbook: %w", err)
		}
	}()
	if defaultSheet := f.GetSheetName(0); defaultSheet != sheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("unable to name the sheet %q: %w", sheet, err)
		}
	}

	header := make([]interface{}, len(t.Columns))
	for idx, column := range t.Columns {
		header[idx] = column
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("unable to write the header: %w", err)
	}

	row := make([]interface{}, len(t.Columns))
	for rowIdx := 0; rowIdx < t.Len(); rowIdx++ {
		for colIdx, column := range t.Columns {
			v := t.Data[column][rowIdx]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[colIdx] = FormatValue(v)
				continue
			}
			row[colIdx] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("unable to write row %d: %w", rowIdx+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("unable to write the workbook: %w", err)
	}
	return nil
}
