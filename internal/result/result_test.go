package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Timings struct {
	PreProcessingMillis int64 `mapstructure:"preProcessingMillis"`
	ComputeMillis       int64 `mapstructure:"computeMillis"`
}

type sampleMutate struct {
	Timings               `mapstructure:",squash"`
	NodePropertiesWritten int64          `mapstructure:"nodePropertiesWritten"`
	Configuration         map[string]any `mapstructure:"configuration,omitempty"`
}

func estimationRow() map[string]any {
	return map[string]any{
		"nodeCount":         int64(100),
		"relationshipCount": int64(400),
		"requiredMemory":    "[1 KiB ... 2 KiB]",
		"treeView":          "Memory Estimation: ...",
		"mapView":           map[string]any{"name": "pageRank"},
		"bytesMin":          int64(1024),
		"bytesMax":          int64(2048),
		"heapPercentageMin": 0.1,
		"heapPercentageMax": 0.2,
	}
}

func TestEstimationFromCypher(t *testing.T) {
	est, err := EstimationFromCypher(estimationRow())
	require.NoError(t, err)

	assert.Equal(t, int64(100), est.NodeCount)
	assert.Equal(t, int64(400), est.RelationshipCount)
	assert.Equal(t, "[1 KiB ... 2 KiB]", est.RequiredMemory)
	assert.Equal(t, int64(1024), est.BytesMin)
	assert.Equal(t, 0.2, est.HeapPercentageMax)

	for wire, want := range estimationRow() {
		snake := map[string]string{
			"nodeCount":         "node_count",
			"relationshipCount": "relationship_count",
			"requiredMemory":    "required_memory",
			"treeView":          "tree_view",
			"mapView":           "map_view",
			"bytesMin":          "bytes_min",
			"bytesMax":          "bytes_max",
			"heapPercentageMin": "heap_percentage_min",
			"heapPercentageMax": "heap_percentage_max",
		}[wire]
		got, err := est.Get(snake)
		require.NoError(t, err, snake)
		assert.Equal(t, want, got, snake)
	}

	_, err = est.Get("bogus")
	assert.Error(t, err)
}

func TestEstimationJSONNumbers(t *testing.T) {
	row := estimationRow()
	row["nodeCount"] = float64(100)
	row["bytesMax"] = float64(2048)
	est, err := EstimationFromCypher(row)
	require.NoError(t, err)
	assert.Equal(t, int64(100), est.NodeCount)
	assert.Equal(t, int64(2048), est.BytesMax)
}

func TestDecodeMissingField(t *testing.T) {
	row := estimationRow()
	delete(row, "bytesMin")
	_, err := EstimationFromCypher(row)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "bytes_min")
}

func TestDecodeSquashAndOptional(t *testing.T) {
	res, err := Decode[sampleMutate](map[string]any{
		"preProcessingMillis":   int64(1),
		"computeMillis":         int64(2),
		"nodePropertiesWritten": int64(3),
		"unrelated":             "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ComputeMillis)
	assert.Equal(t, int64(3), res.NodePropertiesWritten)
	assert.Nil(t, res.Configuration)

	_, err = Decode[sampleMutate](map[string]any{"nodePropertiesWritten": int64(3)})
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "preProcessingMillis")
}

func TestMerge(t *testing.T) {
	merged := Merge(map[string]any{"a": 1, "b": 1}, map[string]any{"b": 2})
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, merged)
}

func TestToMapFlattensEmbeddedTimings(t *testing.T) {
	row, err := ToMap(sampleMutate{
		Timings:               Timings{PreProcessingMillis: 1, ComputeMillis: 2},
		NodePropertiesWritten: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"preProcessingMillis":   int64(1),
		"computeMillis":         int64(2),
		"nodePropertiesWritten": int64(3),
	}, row)
}
