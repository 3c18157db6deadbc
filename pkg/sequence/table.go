package sequence

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xaionaro-go/gapfill/pkg/tolerance"
)

// Table is a set of equally long named columns.
type Table struct {
	Columns []string
	Data    map[string][]float64
}

// NewTable creates a table with the given columns, each of rows values.
func NewTable(columns []string, rows int) (*Table, error) {
	t := &Table{
		Columns: make([]string, 0, len(columns)),
		Data:    make(map[string][]float64, len(columns)),
	}
	for _, column := range columns {
		if _, ok := t.Data[column]; ok {
			return nil, fmt.Errorf("duplicate column %q", column)
		}
		t.Columns = append(t.Columns, column)
		t.Data[column] = make([]float64, rows)
	}
	return t, nil
}

// Len returns the amount of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Data[t.Columns[0]])
}

// Validate checks that every column is present and all the columns have the
// same length.
func (t *Table) Validate() error {
	if len(t.Data) != len(t.Columns) {
		return fmt.Errorf("the table has %d columns, but %d sequences", len(t.Columns), len(t.Data))
	}
	rows := t.Len()
	for _, column := range t.Columns {
		seq, ok := t.Data[column]
		if !ok {
			return fmt.Errorf("no data for column %q", column)
		}
		if len(seq) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", column, len(seq), rows)
		}
	}
	return nil
}

// Crop returns a new table with the rows whose value in the column lies in
// [from, to] up to tolerance.Default. A NaN bound is not applied.
func (t *Table) Crop(column string, from, to float64) (*Table, error) {
	index, ok := t.Data[column]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	keep := make([]bool, len(index))
	for idx := range keep {
		keep[idx] = true
	}
	if !math.IsNaN(from) {
		geq, err := tolerance.GeqClose(index, []float64{from})
		if err != nil {
			return nil, err
		}
		and(keep, geq)
	}
	if !math.IsNaN(to) {
		leq, err := tolerance.LeqClose(index, []float64{to})
		if err != nil {
			return nil, err
		}
		and(keep, leq)
	}

	rows := 0
	for _, k := range keep {
		if k {
			rows++
		}
	}
	result, err := NewTable(t.Columns, rows)
	if err != nil {
		return nil, err
	}
	for _, column := range t.Columns {
		src := t.Data[column]
		dst := result.Data[column][:0]
		for idx, k := range keep {
			if k {
				dst = append(dst, src[idx])
			}
		}
		result.Data[column] = dst
	}
	return result, nil
}

func and(dst, src []bool) {
	for idx := range dst {
		dst[idx] = dst[idx] && src[idx]
	}
}

func isMissingToken(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "na", "null":
		return true
	}
	return false
}

// ParseValue parses a single cell; missing-value tokens become NaN.
func ParseValue(s string) (float64, error) {
	if isMissingToken(s) {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse %q as a number: %w", s, err)
	}
	return v, nil
}

// FormatValue formats a single cell; NaN is formatted as "NaN".
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func tableFromRows(header []string, rows [][]string) (*Table, error) {
	t, err := NewTable(header, len(rows))
	if err != nil {
		return nil, err
	}
	for rowIdx, row := range rows {
		if len(row) > len(header) {
			return nil, fmt.Errorf("row %d has %d cells, but the header has %d", rowIdx+1, len(row), len(header))
		}
		for colIdx, column := range header {
			cell := ""
			if colIdx < len(row) {
				cell = row[colIdx]
			}
			v, err := ParseValue(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", rowIdx+1, column, err)
			}
			t.Data[column][rowIdx] = v
		}
	}
	return t, nil
}
