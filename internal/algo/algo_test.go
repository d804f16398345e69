package algo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/queryrunner"
	"github.com/vanshika/gdsclient/internal/table"
)

type testOptions struct {
	Common
	MaxIterations *int
}

func (o testOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{params.KV("max_iterations", o.MaxIterations)}
}

type testResult struct {
	Summary               `mapstructure:",squash"`
	NodePropertiesWritten int64 `mapstructure:"nodePropertiesWritten"`
}

func summaryRow() map[string]any {
	return map[string]any{
		"preProcessingMillis":   int64(1),
		"computeMillis":         int64(2),
		"postProcessingMillis":  int64(3),
		"nodePropertiesWritten": int64(4),
	}
}

func TestCommonDefaults(t *testing.T) {
	cfg := params.ToGDSConfig(Common{}.Args()...)
	assert.Equal(t, []string{"relationshipTypes", "nodeLabels"}, cfg.Keys())
	labels, _ := cfg.Get("nodeLabels")
	assert.Equal(t, []string{"*"}, labels)
	assert.True(t, Common{}.Logging())
	assert.False(t, Common{LogProgress: params.Ptr(false)}.Logging())
}

func TestConfigArgsOrder(t *testing.T) {
	opts := testOptions{
		Common:        Common{Concurrency: params.Ptr(4), NodeLabels: []string{"Person"}},
		MaxIterations: params.Ptr(20),
	}
	cfg := params.ToGDSConfig(ConfigArgs(opts, params.KV("mutate_property", "score"))...)
	assert.Equal(t, []string{"mutateProperty", "maxIterations", "relationshipTypes", "nodeLabels", "concurrency"}, cfg.Keys())
}

func TestCypherMutate(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(summaryRow())
	caller := NewCypherCaller(runner)

	res, err := CypherMutate[testResult](context.Background(), caller, "gds.test.mutate", NamedGraph("g"), "score",
		testOptions{Common: Common{LogProgress: params.Ptr(false)}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ComputeMillis)
	assert.Equal(t, int64(4), res.NodePropertiesWritten)

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "CALL gds.test.mutate($graph_name, $config)", calls[0].Query)
	assert.False(t, calls[0].Logging)
	assert.Equal(t, "g", calls[0].Params["graph_name"])

	cfg := calls[0].Params["config"].(map[string]any)
	assert.Equal(t, "score", cfg["mutateProperty"])
	assert.NotEmpty(t, cfg["job_id"])
	assert.Equal(t, false, cfg["logProgress"])
}

func TestCypherKeepsProvidedJobID(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(summaryRow())

	_, err := CypherStats[testResult](context.Background(), NewCypherCaller(runner), "gds.test.stats", NamedGraph("g"),
		testOptions{Common: Common{JobID: params.Ptr("my-job")}})
	require.NoError(t, err)

	cfg := runner.Calls()[0].Params["config"].(map[string]any)
	assert.Equal(t, "my-job", cfg["jobId"])
	assert.NotContains(t, cfg, "job_id")
}

func TestCypherWriteSendsWriteConcurrency(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(summaryRow())

	_, err := CypherWrite[testResult](context.Background(), NewCypherCaller(runner), "gds.test.write", NamedGraph("g"), "score",
		testOptions{Common: Common{WriteConcurrency: params.Ptr(2)}})
	require.NoError(t, err)

	cfg := runner.Calls()[0].Params["config"].(map[string]any)
	assert.Equal(t, "score", cfg["writeProperty"])
	assert.Equal(t, 2, cfg["writeConcurrency"])
}

func TestCypherRowRequiresSingleRow(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	_, err := CypherStats[testResult](context.Background(), NewCypherCaller(runner), "gds.test.stats", NamedGraph("g"), testOptions{})
	assert.ErrorIs(t, err, table.ErrNotSingleRow)
}

func TestCypherEstimate(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(map[string]any{
		"nodeCount":         int64(10),
		"relationshipCount": int64(20),
		"requiredMemory":    "1 KiB",
		"treeView":          "tree",
		"mapView":           map[string]any{},
		"bytesMin":          int64(1024),
		"bytesMax":          int64(1024),
		"heapPercentageMin": 0.1,
		"heapPercentageMax": 0.1,
	})
	caller := NewCypherCaller(runner)

	est, err := caller.Estimate(context.Background(), "gds.test.stats.estimate", OnGraph(NamedGraph("g")), testOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), est.NodeCount)

	call := runner.Calls()[0]
	assert.Equal(t, "CALL gds.test.stats.estimate($graph_name_or_projection_config, $algo_config)", call.Query)
	assert.Equal(t, "g", call.Params["graph_name_or_projection_config"])
}

func TestEstimateWithoutTarget(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	_, err := NewCypherCaller(runner).Estimate(context.Background(), "gds.test.stats.estimate", EstimateTarget{}, testOptions{})
	assert.ErrorIs(t, err, ErrNoEstimateTarget)
	assert.Empty(t, runner.Calls())

	transport := arrowclient.NewMemoryTransport()
	arrow := NewArrowCaller(arrowclient.NewJobClient(transport, time.Millisecond, nil), nil)
	_, err = arrow.Estimate(context.Background(), "v2/test", EstimateTarget{}, testOptions{})
	assert.ErrorIs(t, err, ErrNoEstimateTarget)
	assert.Empty(t, transport.Actions())
}

func TestArrowMutate(t *testing.T) {
	transport := arrowclient.NewMemoryTransport()
	transport.Respond("v2/test", map[string]any{"jobId": "job-1"})
	transport.Respond(arrowclient.ActionMutateNodeProperty, map[string]any{"nodePropertiesWritten": 4})
	transport.Respond(arrowclient.ActionJobSummary, map[string]any{
		"preProcessingMillis":  1,
		"computeMillis":        2,
		"postProcessingMillis": 3,
	})
	caller := NewArrowCaller(arrowclient.NewJobClient(transport, time.Millisecond, nil), nil)

	res, err := ArrowMutate[testResult](context.Background(), caller, "v2/test", NamedGraph("g"), "score",
		testOptions{MaxIterations: params.Ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.NodePropertiesWritten)

	submitted := transport.Actions()[0]
	assert.Equal(t, "g", submitted.Body["graphName"])
	assert.Equal(t, float64(5), submitted.Body["maxIterations"])
	assert.NotContains(t, submitted.Body, "mutateProperty")
}

func TestArrowProjectionEstimate(t *testing.T) {
	transport := arrowclient.NewMemoryTransport()
	transport.Respond("v2/test.estimate", map[string]any{
		"nodeCount": 1, "relationshipCount": 2, "requiredMemory": "x", "treeView": "y",
		"mapView": map[string]any{}, "bytesMin": 3, "bytesMax": 4,
		"heapPercentageMin": 0.5, "heapPercentageMax": 0.6,
	})
	caller := NewArrowCaller(arrowclient.NewJobClient(transport, time.Millisecond, nil), nil)

	projection := params.NewMap(params.KV("nodeProjection", "*"), params.KV("relationshipProjection", "*"))
	est, err := caller.Estimate(context.Background(), "v2/test", OnProjection(projection), testOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), est.BytesMax)
	assert.Equal(t, map[string]any{"nodeProjection": "*", "relationshipProjection": "*"},
		transport.Actions()[0].Body["projectionConfig"])
}

func TestArrowWriteWithoutWriteBack(t *testing.T) {
	transport := arrowclient.NewMemoryTransport()
	caller := NewArrowCaller(arrowclient.NewJobClient(transport, time.Millisecond, nil), nil)
	_, err := ArrowWriteNodeProperty[testResult](context.Background(), caller, "v2/test", NamedGraph("g"), "score", testOptions{})
	assert.ErrorIs(t, err, arrowclient.ErrNoWriteBack)
}

func TestRenameNodeEndpoints(t *testing.T) {
	in := table.New("sourceNodeId", "targetNodeId", "relationshipType", "totalCost")
	require.NoError(t, in.AppendRow(int64(0), int64(3), "PATH_0", 4.5))

	out, err := RenameNodeEndpoints(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"sourceNode", "targetNode", "totalCost"}, out.Columns())
	assert.Equal(t, map[string]any{"sourceNode": int64(0), "targetNode": int64(3), "totalCost": 4.5}, out.Row(0))
	assert.Equal(t, []string{"sourceNodeId", "targetNodeId", "relationshipType", "totalCost"}, in.Columns())
}

func TestWithIndex(t *testing.T) {
	in := table.New("sourceNode")
	require.NoError(t, in.AppendRow(int64(7)))
	require.NoError(t, in.AppendRow(int64(8)))

	out, err := WithIndex(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"index", "sourceNode"}, out.Columns())
	col, _ := out.Column("index")
	assert.Equal(t, []any{int64(0), int64(1)}, col)
}
