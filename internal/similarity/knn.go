// Package similarity exposes the k-nearest neighbours algorithm.
package similarity

import (
	"context"
	"fmt"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// Sampler selects how initial neighbours are picked.
type Sampler string

const (
	SamplerUniform    Sampler = "uniform"
	SamplerRandomWalk Sampler = "randomWalk"
)

func (s Sampler) GDSValue() any {
	if s == "" {
		return nil
	}
	return string(s)
}

// NodeProperties names the node properties KNN compares, either as a plain list
// or with an explicit similarity metric per property.
type NodeProperties struct {
	names   []string
	metrics *params.Map
}

// Properties compares the named properties with their default metric.
func Properties(names ...string) NodeProperties {
	return NodeProperties{names: names}
}

// PropertiesWithMetrics compares each property with the given metric, e.g.
// params.KV("embedding", "COSINE").
func PropertiesWithMetrics(metrics ...params.Arg) NodeProperties {
	return NodeProperties{metrics: params.NewMap(metrics...)}
}

func (p NodeProperties) GDSValue() any {
	switch {
	case p.metrics != nil:
		return p.metrics
	case len(p.names) == 1:
		return p.names[0]
	case len(p.names) > 1:
		return append([]string(nil), p.names...)
	}
	return nil
}

// KNNOptions configures k-nearest neighbours.
type KNNOptions struct {
	algo.Common
	NodeProperties   NodeProperties
	TopK             *int
	SampleRate       *float64
	DeltaThreshold   *float64
	MaxIterations    *int
	RandomJoins      *int
	InitialSampler   Sampler
	RandomSeed       *int64
	SimilarityCutoff *float64
	PerturbationRate *float64
}

func (o KNNOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("node_properties", o.NodeProperties),
		params.KV("top_k", o.TopK),
		params.KV("sample_rate", o.SampleRate),
		params.KV("delta_threshold", o.DeltaThreshold),
		params.KV("max_iterations", o.MaxIterations),
		params.KV("random_joins", o.RandomJoins),
		params.KV("initial_sampler", o.InitialSampler),
		params.KV("random_seed", o.RandomSeed),
		params.KV("similarity_cutoff", o.SimilarityCutoff),
		params.KV("perturbation_rate", o.PerturbationRate),
	}
}

// KNNComputation holds the statistics shared by every KNN mode.
type KNNComputation struct {
	algo.Summary           `mapstructure:",squash"`
	RanIterations          int64          `mapstructure:"ranIterations"`
	DidConverge            bool           `mapstructure:"didConverge"`
	NodePairsConsidered    int64          `mapstructure:"nodePairsConsidered"`
	NodesCompared          int64          `mapstructure:"nodesCompared"`
	SimilarityDistribution map[string]any `mapstructure:"similarityDistribution"`
}

// KNNStatsResult is reported by the stats mode.
type KNNStatsResult struct {
	KNNComputation  `mapstructure:",squash"`
	SimilarityPairs int64 `mapstructure:"similarityPairs"`
}

// KNNMutateResult is reported by the mutate mode.
type KNNMutateResult struct {
	KNNComputation       `mapstructure:",squash"`
	MutateMillis         int64 `mapstructure:"mutateMillis"`
	RelationshipsWritten int64 `mapstructure:"relationshipsWritten"`
}

// KNNWriteResult is reported by the write mode.
type KNNWriteResult struct {
	KNNComputation       `mapstructure:",squash"`
	WriteMillis          int64 `mapstructure:"writeMillis"`
	RelationshipsWritten int64 `mapstructure:"relationshipsWritten"`
}

// KNNEndpoints runs k-nearest neighbours. Mutate and write store one relationship
// per similar pair. Stream yields node1, node2 and similarity.
type KNNEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType, mutateProperty string, opts KNNOptions) (KNNMutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts KNNOptions) (KNNStatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts KNNOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeRelationshipType, writeProperty string, opts KNNOptions) (KNNWriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts KNNOptions) (result.Estimation, error)
}

const (
	knnProcedure = "gds.knn"
	knnJob       = "v2/similarity.knn"
)

type knnCypher struct {
	caller *algo.CypherCaller
}

// NewKNNCypher serves KNN through gds.knn procedures.
func NewKNNCypher(caller *algo.CypherCaller) KNNEndpoints {
	return &knnCypher{caller: caller}
}

func (e *knnCypher) Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType, mutateProperty string, opts KNNOptions) (KNNMutateResult, error) {
	return algo.CypherRow[KNNMutateResult](ctx, e.caller, knnProcedure+".mutate", g, opts,
		params.KV("mutate_relationship_type", mutateRelationshipType),
		params.KV("mutate_property", mutateProperty),
	)
}

func (e *knnCypher) Stats(ctx context.Context, g algo.Graph, opts KNNOptions) (KNNStatsResult, error) {
	return algo.CypherStats[KNNStatsResult](ctx, e.caller, knnProcedure+".stats", g, opts)
}

func (e *knnCypher) Stream(ctx context.Context, g algo.Graph, opts KNNOptions) (*table.Table, error) {
	return e.caller.Stream(ctx, knnProcedure+".stream", g, opts)
}

func (e *knnCypher) Write(ctx context.Context, g algo.Graph, writeRelationshipType, writeProperty string, opts KNNOptions) (KNNWriteResult, error) {
	return algo.CypherRow[KNNWriteResult](ctx, e.caller, knnProcedure+".write", g, opts,
		params.KV("write_relationship_type", writeRelationshipType),
		params.KV("write_property", writeProperty),
		params.KV("write_concurrency", opts.WriteConcurrency),
	)
}

func (e *knnCypher) Estimate(ctx context.Context, target algo.EstimateTarget, opts KNNOptions) (result.Estimation, error) {
	return e.caller.Estimate(ctx, knnProcedure+".stats.estimate", target, opts)
}

type knnArrow struct {
	caller *algo.ArrowCaller
}

// NewKNNArrow serves KNN as session jobs. Streaming is not offered by sessions.
func NewKNNArrow(caller *algo.ArrowCaller) KNNEndpoints {
	return &knnArrow{caller: caller}
}

func (e *knnArrow) Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType, mutateProperty string, opts KNNOptions) (KNNMutateResult, error) {
	return algo.ArrowMutateRelationships[KNNMutateResult](ctx, e.caller, knnJob, g, mutateRelationshipType, mutateProperty, opts)
}

func (e *knnArrow) Stats(ctx context.Context, g algo.Graph, opts KNNOptions) (KNNStatsResult, error) {
	return algo.ArrowStats[KNNStatsResult](ctx, e.caller, knnJob, g, opts)
}

func (e *knnArrow) Stream(context.Context, algo.Graph, KNNOptions) (*table.Table, error) {
	return nil, fmt.Errorf("knn stream: %w", algo.ErrNotSupported)
}

func (e *knnArrow) Write(ctx context.Context, g algo.Graph, writeRelationshipType, writeProperty string, opts KNNOptions) (KNNWriteResult, error) {
	wc := arrowclient.WriteConfig{
		RelationshipTypeOverwrite: writeRelationshipType,
		PropertyOverwrites:        writeProperty,
	}
	return algo.ArrowWrite[KNNWriteResult](ctx, e.caller, knnJob, g, wc, opts)
}

func (e *knnArrow) Estimate(ctx context.Context, target algo.EstimateTarget, opts KNNOptions) (result.Estimation, error) {
	return e.caller.Estimate(ctx, knnJob, target, opts)
}
