package result

import (
	"fmt"

	"github.com/vanshika/gdsclient/internal/params"
)

// Estimation is the memory estimate for running an algorithm.
type Estimation struct {
	NodeCount         int64          `mapstructure:"node_count"`
	RelationshipCount int64          `mapstructure:"relationship_count"`
	RequiredMemory    string         `mapstructure:"required_memory"`
	TreeView          string         `mapstructure:"tree_view"`
	MapView           map[string]any `mapstructure:"map_view"`
	BytesMin          int64          `mapstructure:"bytes_min"`
	BytesMax          int64          `mapstructure:"bytes_max"`
	HeapPercentageMin float64        `mapstructure:"heap_percentage_min"`
	HeapPercentageMax float64        `mapstructure:"heap_percentage_max"`
}

// EstimationFromCypher builds an Estimation from a camelCase row as returned by the
// engine's estimate procedures.
func EstimationFromCypher(row map[string]any) (Estimation, error) {
	snake := make(map[string]any, len(row))
	for k, v := range row {
		snake[params.ToSnakeCase(k)] = v
	}
	return Decode[Estimation](snake)
}

// Get looks a field up by its snake_case name.
func (e Estimation) Get(key string) (any, error) {
	switch key {
	case "node_count":
		return e.NodeCount, nil
	case "relationship_count":
		return e.RelationshipCount, nil
	case "required_memory":
		return e.RequiredMemory, nil
	case "tree_view":
		return e.TreeView, nil
	case "map_view":
		return e.MapView, nil
	case "bytes_min":
		return e.BytesMin, nil
	case "bytes_max":
		return e.BytesMax, nil
	case "heap_percentage_min":
		return e.HeapPercentageMin, nil
	case "heap_percentage_max":
		return e.HeapPercentageMax, nil
	default:
		return nil, fmt.Errorf("estimation has no field %q", key)
	}
}
