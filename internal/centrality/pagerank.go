package centrality

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// Scaler selects how scores are normalised: by name ("L2", "MinMax", "Mean", ...)
// or as a configuration such as {"type": "Log", "offset": 1}.
type Scaler struct {
	name   string
	config *params.Map
}

// ScalerNamed selects a scaler by name.
func ScalerNamed(name string) Scaler { return Scaler{name: name} }

// ScalerWithConfig selects scaler kind with extra settings in snake_case.
func ScalerWithConfig(kind string, args ...params.Arg) Scaler {
	cfg := params.NewMap(params.KV("type", kind))
	cfg.Merge(params.ToGDSConfig(args...))
	return Scaler{config: cfg}
}

func (s Scaler) GDSValue() any {
	if s.config != nil {
		return s.config
	}
	if s.name != "" {
		return s.name
	}
	return nil
}

// RankOptions configures PageRank and ArticleRank.
type RankOptions struct {
	algo.Common
	DampingFactor              *float64
	Tolerance                  *float64
	MaxIterations              *int
	Scaler                     Scaler
	SourceNodes                []int64
	RelationshipWeightProperty *string
}

func (o RankOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("damping_factor", o.DampingFactor),
		params.KV("tolerance", o.Tolerance),
		params.KV("max_iterations", o.MaxIterations),
		params.KV("scaler", o.Scaler),
		params.KV("source_nodes", o.SourceNodes),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// PageRankEndpoints runs PageRank in every execution mode.
type PageRankEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts RankOptions) (RankMutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts RankOptions) (RankStatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts RankOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts RankOptions) (RankWriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts RankOptions) (result.Estimation, error)
}

// ArticleRankEndpoints runs ArticleRank; it shares the PageRank surface.
type ArticleRankEndpoints interface {
	PageRankEndpoints
}

func rankCypher(caller *algo.CypherCaller, base string) *algo.CypherNodeProperty[RankOptions, RankMutateResult, RankStatsResult, RankWriteResult] {
	return algo.NewCypherNodeProperty[RankOptions, RankMutateResult, RankStatsResult, RankWriteResult](caller, base)
}

func rankArrow(caller *algo.ArrowCaller, endpoint string) *algo.ArrowNodeProperty[RankOptions, RankMutateResult, RankStatsResult, RankWriteResult] {
	return algo.NewArrowNodeProperty[RankOptions, RankMutateResult, RankStatsResult, RankWriteResult](caller, endpoint)
}

// NewPageRankCypher serves PageRank through gds.pageRank procedures.
func NewPageRankCypher(caller *algo.CypherCaller) PageRankEndpoints {
	return rankCypher(caller, "gds.pageRank")
}

// NewPageRankArrow serves PageRank as session jobs.
func NewPageRankArrow(caller *algo.ArrowCaller) PageRankEndpoints {
	return rankArrow(caller, "v2/centrality.pageRank")
}

// NewArticleRankCypher serves ArticleRank through gds.articleRank procedures.
func NewArticleRankCypher(caller *algo.CypherCaller) ArticleRankEndpoints {
	return rankCypher(caller, "gds.articleRank")
}

// NewArticleRankArrow serves ArticleRank as session jobs.
func NewArticleRankArrow(caller *algo.ArrowCaller) ArticleRankEndpoints {
	return rankArrow(caller, "v2/centrality.articleRank")
}
