package centrality

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// BetweennessOptions configures Betweenness centrality. Setting SamplingSize
// approximates the scores from that many source nodes.
type BetweennessOptions struct {
	algo.Common
	SamplingSize               *int
	SamplingSeed               *int64
	RelationshipWeightProperty *string
}

func (o BetweennessOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("sampling_size", o.SamplingSize),
		params.KV("sampling_seed", o.SamplingSeed),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// BetweennessEndpoints runs Betweenness centrality in every execution mode.
type BetweennessEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts BetweennessOptions) (MutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts BetweennessOptions) (StatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts BetweennessOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts BetweennessOptions) (WriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts BetweennessOptions) (result.Estimation, error)
}

// NewBetweennessCypher serves Betweenness through gds.betweenness procedures.
func NewBetweennessCypher(caller *algo.CypherCaller) BetweennessEndpoints {
	return algo.NewCypherNodeProperty[BetweennessOptions, MutateResult, StatsResult, WriteResult](caller, "gds.betweenness")
}

// NewBetweennessArrow serves Betweenness as session jobs.
func NewBetweennessArrow(caller *algo.ArrowCaller) BetweennessEndpoints {
	return algo.NewArrowNodeProperty[BetweennessOptions, MutateResult, StatsResult, WriteResult](caller, "v2/centrality.betweenness")
}
