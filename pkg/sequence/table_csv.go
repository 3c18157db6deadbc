package sequence

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadCSV reads a table with a header line.
//
// A single-column table stores a missing value as an empty line, so in
// that case every empty line is a row of NaN. Empty lines of wider tables
// are skipped.
func ReadCSV(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	var (
		header []string
		rows   [][]string
	)
	for lineIdx := 1; scanner.Scan(); lineIdx++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if header != nil && strings.TrimSpace(line) == "" {
			if len(header) == 1 {
				rows = append(rows, []string{""})
			}
			continue
		}
		record, err := parseCSVLine(line)
		if err != nil {
			return nil, fmt.Errorf("unable to read CSV line %d: %w", lineIdx, err)
		}
		if header == nil {
			header = record
			continue
		}
		rows = append(rows, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read CSV: %w", err)
	}
	if header == nil {
		return nil, errors.New("no header line")
	}
	return tableFromRows(header, rows)
}

func parseCSVLine(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	record, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("empty header line")
	}
	return record, err
}

// WriteCSV writes the table with a header line.
func (t *Table) WriteCSV(w io.Writer) error {
	if err := t.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("unable to write the header: %w", err)
	}
	row := make([]string, len(t.Columns))
	for rowIdx := 0; rowIdx < t.Len(); rowIdx++ {
		for colIdx, column := range t.Columns {
			row[colIdx] = FormatValue(t.Data[column][rowIdx])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("unable to write row %d: %w", rowIdx+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
