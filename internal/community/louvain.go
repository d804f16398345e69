// Package community exposes community detection algorithms: Louvain and
// weakly connected components.
package community

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// LouvainOptions configures Louvain modularity optimisation.
type LouvainOptions struct {
	algo.Common
	MaxLevels                      *int
	MaxIterations                  *int
	Tolerance                      *float64
	IncludeIntermediateCommunities *bool
	SeedProperty                   *string
	ConsecutiveIDs                 *bool
	MinCommunitySize               *int
	RelationshipWeightProperty     *string
}

func (o LouvainOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("max_levels", o.MaxLevels),
		params.KV("max_iterations", o.MaxIterations),
		params.KV("tolerance", o.Tolerance),
		params.KV("include_intermediate_communities", o.IncludeIntermediateCommunities),
		params.KV("seed_property", o.SeedProperty),
		params.KV("consecutive_ids", o.ConsecutiveIDs),
		params.KV("min_community_size", o.MinCommunitySize),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// LouvainStatsResult is reported by the stats mode.
type LouvainStatsResult struct {
	algo.Summary          `mapstructure:",squash"`
	Modularity            float64        `mapstructure:"modularity"`
	Modularities          []float64      `mapstructure:"modularities"`
	RanLevels             int64          `mapstructure:"ranLevels"`
	CommunityCount        int64          `mapstructure:"communityCount"`
	CommunityDistribution map[string]any `mapstructure:"communityDistribution"`
}

// LouvainMutateResult is reported by the mutate mode.
type LouvainMutateResult struct {
	LouvainStatsResult    `mapstructure:",squash"`
	MutateMillis          int64 `mapstructure:"mutateMillis"`
	NodePropertiesWritten int64 `mapstructure:"nodePropertiesWritten"`
}

// LouvainWriteResult is reported by the write mode.
type LouvainWriteResult struct {
	LouvainStatsResult    `mapstructure:",squash"`
	WriteMillis           int64 `mapstructure:"writeMillis"`
	NodePropertiesWritten int64 `mapstructure:"nodePropertiesWritten"`
}

// LouvainEndpoints runs Louvain in every execution mode.
type LouvainEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts LouvainOptions) (LouvainMutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts LouvainOptions) (LouvainStatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts LouvainOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts LouvainOptions) (LouvainWriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts LouvainOptions) (result.Estimation, error)
}

// NewLouvainCypher serves Louvain through gds.louvain procedures.
func NewLouvainCypher(caller *algo.CypherCaller) LouvainEndpoints {
	return algo.NewCypherNodeProperty[LouvainOptions, LouvainMutateResult, LouvainStatsResult, LouvainWriteResult](caller, "gds.louvain")
}

// NewLouvainArrow serves Louvain as session jobs.
func NewLouvainArrow(caller *algo.ArrowCaller) LouvainEndpoints {
	return algo.NewArrowNodeProperty[LouvainOptions, LouvainMutateResult, LouvainStatsResult, LouvainWriteResult](caller, "v2/community.louvain")
}
