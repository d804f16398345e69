package similarity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/queryrunner"
	"github.com/vanshika/gdsclient/internal/table"
)

var graph = algo.NamedGraph("products")

func knnRow(extra map[string]any) map[string]any {
	row := map[string]any{
		"preProcessingMillis":    int64(0),
		"computeMillis":          int64(9),
		"postProcessingMillis":   int64(0),
		"ranIterations":          int64(3),
		"didConverge":            true,
		"nodePairsConsidered":    int64(120),
		"nodesCompared":          int64(10),
		"similarityDistribution": map[string]any{"mean": 0.7},
	}
	for k, v := range extra {
		row[k] = v
	}
	return row
}

func TestKNNCypherMutate(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(knnRow(map[string]any{"mutateMillis": int64(2), "relationshipsWritten": int64(20)}))

	res, err := NewKNNCypher(algo.NewCypherCaller(runner)).Mutate(context.Background(), graph, "SIMILAR", "score", KNNOptions{
		NodeProperties: PropertiesWithMetrics(params.KV("embedding", "COSINE"), params.KV("age", "EUCLIDEAN")),
		TopK:           params.Ptr(2),
		InitialSampler: SamplerRandomWalk,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20), res.RelationshipsWritten)
	assert.Equal(t, int64(120), res.NodePairsConsidered)

	call := runner.Calls()[0]
	assert.Equal(t, "gds.knn.mutate", call.Endpoint)
	cfg := call.Params["config"].(map[string]any)
	assert.Equal(t, "SIMILAR", cfg["mutateRelationshipType"])
	assert.Equal(t, "score", cfg["mutateProperty"])
	assert.Equal(t, map[string]any{"embedding": "COSINE", "age": "EUCLIDEAN"}, cfg["nodeProperties"])
	assert.Equal(t, "randomWalk", cfg["initialSampler"])
	assert.Equal(t, 2, cfg["topK"])
}

func TestKNNCypherStatsAndStream(t *testing.T) {
	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(knnRow(map[string]any{"similarityPairs": int64(20)}))
	stream := table.New("node1", "node2", "similarity")
	require.NoError(t, stream.AppendRow(int64(0), int64(1), 0.9))
	runner.PushResult(stream)

	ep := NewKNNCypher(algo.NewCypherCaller(runner))
	stats, err := ep.Stats(context.Background(), graph, KNNOptions{NodeProperties: Properties("embedding")})
	require.NoError(t, err)
	assert.Equal(t, int64(20), stats.SimilarityPairs)
	assert.Equal(t, "embedding", runner.Calls()[0].Params["config"].(map[string]any)["nodeProperties"])

	tbl, err := ep.Stream(context.Background(), graph, KNNOptions{NodeProperties: Properties("a", "b")})
	require.NoError(t, err)
	assert.Equal(t, []string{"node1", "node2", "similarity"}, tbl.Columns())
	assert.Equal(t, []string{"a", "b"}, runner.Calls()[1].Params["config"].(map[string]any)["nodeProperties"])
}

func TestKNNArrowStreamUnsupported(t *testing.T) {
	transport := arrowclient.NewMemoryTransport()
	caller := algo.NewArrowCaller(arrowclient.NewJobClient(transport, time.Millisecond, nil), nil)

	_, err := NewKNNArrow(caller).Stream(context.Background(), graph, KNNOptions{})
	assert.ErrorIs(t, err, algo.ErrNotSupported)
	assert.Empty(t, transport.Actions())
}

func TestKNNArrowMutateAndWrite(t *testing.T) {
	transport := arrowclient.NewMemoryTransport()
	transport.Respond("v2/similarity.knn", map[string]any{"jobId": "job-1"})
	transport.Respond(arrowclient.ActionMutateRelationship, map[string]any{"mutateMillis": 1, "relationshipsWritten": 20})
	transport.Respond(arrowclient.ActionJobSummary, knnRow(nil))
	transport.Respond("v2/similarity.knn", map[string]any{"jobId": "job-2"})
	transport.Respond(arrowclient.ActionJobSummary, knnRow(nil))

	runner := queryrunner.NewMemoryRunner()
	runner.PushRow(map[string]any{"writeMillis": int64(4), "relationshipsWritten": int64(20)})
	caller := algo.NewArrowCaller(
		arrowclient.NewJobClient(transport, time.Millisecond, nil),
		arrowclient.NewWriteBack(runner),
	)
	ep := NewKNNArrow(caller)

	mutated, err := ep.Mutate(context.Background(), graph, "SIMILAR", "score", KNNOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(20), mutated.RelationshipsWritten)

	mutateAction := transport.Actions()[2]
	assert.Equal(t, arrowclient.ActionMutateRelationship, mutateAction.Type)
	assert.Equal(t, map[string]any{"jobId": "job-1", "mutateRelationshipType": "SIMILAR", "mutateProperty": "score"}, mutateAction.Body)

	written, err := ep.Write(context.Background(), graph, "SIMILAR", "score", KNNOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), written.WriteMillis)
	assert.Equal(t, map[string]any{"propertyOverwrites": "score", "relationshipTypeOverwrite": "SIMILAR"},
		runner.Calls()[0].Params["configuration"])
}

func TestNodePropertiesValue(t *testing.T) {
	assert.Nil(t, NodeProperties{}.GDSValue())
	assert.Nil(t, Sampler("").GDSValue())
}
