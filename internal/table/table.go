// Package table holds tabular results returned by stream operations.
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSingleRow is returned by Squeeze when a table does not hold exactly one row.
	ErrNotSingleRow = errors.New("expected exactly one row")
	// ErrUnknownColumn indicates a column lookup miss.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn indicates two columns would share a name.
	ErrDuplicateColumn = errors.New("duplicate column")
)

// Table is an ordered set of equally long named columns.
type Table struct {
	columns []string
	data    map[string][]any
	rows    int
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{data: make(map[string][]any, len(columns))}
	for _, c := range columns {
		t.columns = append(t.columns, c)
		t.data[c] = nil
	}
	return t
}

// FromRows builds a table from row maps. Values missing from a row are stored as nil.
func FromRows(columns []string, rows []map[string]any) *Table {
	t := New(columns...)
	for _, row := range rows {
		for _, c := range t.columns {
			t.data[c] = append(t.data[c], row[c])
		}
		t.rows++
	}
	return t
}

// AppendRow appends one row given in column order.
func (t *Table) AppendRow(values ...any) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("append row: got %d values for %d columns", len(values), len(t.columns))
	}
	for i, c := range t.columns {
		t.data[c] = append(t.data[c], values[i])
	}
	t.rows++
	return nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// HasColumn reports whether name is a column of t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the values of a column.
func (t *Table) Column(name string) ([]any, bool) {
	values, ok := t.data[name]
	if !ok {
		return nil, false
	}
	return append([]any(nil), values...), true
}

// Row returns row i keyed by column name.
func (t *Table) Row(i int) map[string]any {
	row := make(map[string]any, len(t.columns))
	for _, c := range t.columns {
		row[c] = t.data[c][i]
	}
	return row
}

// Rows returns every row keyed by column name.
func (t *Table) Rows() []map[string]any {
	rows := make([]map[string]any, t.rows)
	for i := range rows {
		rows[i] = t.Row(i)
	}
	return rows
}

// Values returns row i in column order.
func (t *Table) Values(i int) []any {
	values := make([]any, len(t.columns))
	for j, c := range t.columns {
		values[j] = t.data[c][i]
	}
	return values
}

// Squeeze returns the single row of a one-row table.
func (t *Table) Squeeze() (map[string]any, error) {
	if t.Len() != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNotSingleRow, t.Len())
	}
	return t.Row(0), nil
}

// Rename returns a copy of t with columns renamed according to mapping (old -> new).
// Columns not in mapping keep their names and positions. Renaming onto a name still
// held by another column fails.
func (t *Table) Rename(mapping map[string]string) (*Table, error) {
	out := &Table{data: make(map[string][]any, len(t.columns)), rows: t.rows}
	for _, c := range t.columns {
		name := c
		if renamed, ok := mapping[c]; ok {
			name = renamed
		}
		if _, taken := out.data[name]; taken {
			return nil, fmt.Errorf("rename %s: %w: %q", c, ErrDuplicateColumn, name)
		}
		out.columns = append(out.columns, name)
		out.data[name] = t.data[c]
	}
	return out, nil
}

// Drop returns a copy of t without the named columns. Unknown names are ignored.
func (t *Table) Drop(columns ...string) *Table {
	skip := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		skip[c] = struct{}{}
	}
	out := &Table{data: make(map[string][]any, len(t.columns)), rows: t.rows}
	for _, c := range t.columns {
		if _, ok := skip[c]; ok {
			continue
		}
		out.columns = append(out.columns, c)
		out.data[c] = t.data[c]
	}
	return out
}

// InsertColumn returns a copy of t with a new column at position pos.
func (t *Table) InsertColumn(pos int, name string, values []any) (*Table, error) {
	if t.HasColumn(name) {
		return nil, fmt.Errorf("insert column: %w: %q", ErrDuplicateColumn, name)
	}
	if len(values) != t.rows {
		return nil, fmt.Errorf("insert column %q: got %d values for %d rows", name, len(values), t.rows)
	}
	if pos < 0 || pos > len(t.columns) {
		return nil, fmt.Errorf("insert column %q: position %d out of range", name, pos)
	}
	out := &Table{data: make(map[string][]any, len(t.columns)+1), rows: t.rows}
	out.columns = append(out.columns, t.columns[:pos]...)
	out.columns = append(out.columns, name)
	out.columns = append(out.columns, t.columns[pos:]...)
	for _, c := range t.columns {
		out.data[c] = t.data[c]
	}
	out.data[name] = values
	return out, nil
}

// Float64s returns a numeric column as float64 values. Nil entries are skipped.
func (t *Table) Float64s(name string) ([]float64, error) {
	values, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	out := make([]float64, 0, len(values))
	for i, v := range values {
		if v == nil {
			continue
		}
		f, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("column %s row %d: %T is not numeric", name, i, v)
		}
		out = append(out, f)
	}
	return out, nil
}

func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case int:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint:
		return float64(v), true
	default:
		return 0, false
	}
}
