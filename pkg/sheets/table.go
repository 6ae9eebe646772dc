package sheets

import (
	"fmt"
	"strconv"
)

// Table is a normalized tabular read: the header row plus data rows padded or
// truncated to the header's column count.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable builds a Table from raw value rows. The first row is the header;
// every following row is normalized to the header width (short rows padded
// with empty strings, long rows truncated). maxRows caps the data rows when
// positive.
func NewTable(values [][]any, maxRows int) *Table {
	if len(values) == 0 {
		return &Table{}
	}

	header := stringifyRow(values[0])
	t := &Table{Header: header}

	for _, raw := range values[1:] {
		if maxRows > 0 && len(t.Rows) >= maxRows {
			break
		}
		row := stringifyRow(raw)
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		} else if len(row) > len(header) {
			row = row[:len(header)]
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Maps renders each data row as a header→value map.
func (t *Table) Maps() []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		m := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			m[h] = row[i]
		}
		out = append(out, m)
	}
	return out
}

// stringifyRow renders raw cell values as strings. The values API returns
// strings for formatted reads, but numbers and bools appear when a sheet
// carries raw values.
func stringifyRow(raw []any) []string {
	row := make([]string, len(raw))
	for i, v := range raw {
		switch val := v.(type) {
		case string:
			row[i] = val
		case float64:
			row[i] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			row[i] = strconv.FormatBool(val)
		case nil:
			row[i] = ""
		default:
			row[i] = fmt.Sprint(val)
		}
	}
	return row
}
