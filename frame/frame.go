// Package frame provides the in-memory tabular structure that query results
// are materialized into: named columns over an ordered list of rows.
//
// A Frame is a plain value with no connection to the database that produced
// it — by the time one is returned every session and connection used to build
// it has been released.
package frame

import (
	"fmt"
	"strconv"
	"time"

	"github.com/koustreak/sqlframe/errs"
)

// Frame is a columnar table: a fixed column set and zero or more rows.
// Rows[i][j] holds the value of Columns[j] in row i.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty Frame with the given column set.
func New(columns []string) *Frame {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Frame{Columns: cols, Rows: make([][]any, 0)}
}

// Append adds a row. The row must have exactly one value per column.
func (f *Frame) Append(row []any) error {
	if len(row) != len(f.Columns) {
		return errs.Newf(errs.KindUnknown,
			"frame: row has %d values, frame has %d columns", len(row), len(f.Columns))
	}
	f.Rows = append(f.Rows, row)
	return nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.Columns)
}

// Column returns all values of the named column, in row order.
func (f *Frame) Column(name string) ([]any, error) {
	idx := -1
	for i, c := range f.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errs.Newf(errs.KindNotFound, "frame: no column %q", name)
	}

	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Records returns the frame as strings: a header record followed by one
// record per row. This is the representation used by the CSV encoder.
func (f *Frame) Records() [][]string {
	records := make([][]string, 0, len(f.Rows)+1)
	records = append(records, f.Columns)
	for _, row := range f.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = formatValue(v)
		}
		records = append(records, rec)
	}
	return records
}

// String returns a compact one-line summary, useful in logs.
func (f *Frame) String() string {
	return fmt.Sprintf("frame(%d rows x %d columns)", len(f.Rows), len(f.Columns))
}

// formatValue renders a single cell as text.
// NULL becomes the empty string; byte slices are assumed to be text.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
