package algo

import "github.com/vanshika/gdsclient/internal/table"

// RenameNodeEndpoints maps session stream columns onto the names used by the
// procedure API for path results.
func RenameNodeEndpoints(t *table.Table) (*table.Table, error) {
	renamed, err := t.Rename(map[string]string{
		"sourceNodeId": "sourceNode",
		"targetNodeId": "targetNode",
	})
	if err != nil {
		return nil, err
	}
	return renamed.Drop("relationshipType"), nil
}

// WithIndex prepends an index column numbering the rows from zero.
func WithIndex(t *table.Table) (*table.Table, error) {
	index := make([]any, t.Len())
	for i := range index {
		index[i] = int64(i)
	}
	return t.InsertColumn(0, "index", index)
}
