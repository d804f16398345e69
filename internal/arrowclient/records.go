package arrowclient

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/vanshika/gdsclient/internal/table"
)

func tableForSchema(schema *arrow.Schema) *table.Table {
	names := make([]string, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		names = append(names, f.Name)
	}
	return table.New(names...)
}

// RecordsToTable converts record batches sharing schema into a table.
func RecordsToTable(schema *arrow.Schema, records ...arrow.Record) (*table.Table, error) {
	tbl := tableForSchema(schema)
	for _, rec := range records {
		if err := appendRecord(tbl, rec); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func appendRecord(tbl *table.Table, rec arrow.Record) error {
	cols := rec.Columns()
	for i := 0; i < int(rec.NumRows()); i++ {
		values := make([]any, len(cols))
		for j, col := range cols {
			values[j] = valueAt(col, i)
		}
		if err := tbl.AppendRow(values...); err != nil {
			return err
		}
	}
	return nil
}

func valueAt(arr arrow.Array, i int) any {
	if arr.IsNull(i) {
		return nil
	}
	switch a := arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint64:
		v := a.Value(i)
		if v > math.MaxInt64 {
			return v
		}
		return int64(v)
	case *array.Float64:
		return a.Value(i)
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.List:
		start, end := a.ValueOffsets(i)
		return listValues(a.ListValues(), start, end)
	case *array.LargeList:
		start, end := a.ValueOffsets(i)
		return listValues(a.ListValues(), start, end)
	default:
		return a.GetOneForMarshal(i)
	}
}

func listValues(values arrow.Array, start, end int64) []any {
	out := make([]any, 0, end-start)
	for j := start; j < end; j++ {
		out = append(out, valueAt(values, int(j)))
	}
	return out
}
