package algo

import (
	"context"

	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// CypherNodeProperty serves the modes of an algorithm that computes one value per
// node, with O its options and M, S, W its mutate, stats and write results.
type CypherNodeProperty[O Options, M, S, W any] struct {
	caller *CypherCaller
	base   string
}

// NewCypherNodeProperty serves the procedures below base, e.g. "gds.pageRank".
func NewCypherNodeProperty[O Options, M, S, W any](caller *CypherCaller, base string) *CypherNodeProperty[O, M, S, W] {
	return &CypherNodeProperty[O, M, S, W]{caller: caller, base: base}
}

func (e *CypherNodeProperty[O, M, S, W]) Mutate(ctx context.Context, g Graph, mutateProperty string, opts O) (M, error) {
	return CypherMutate[M](ctx, e.caller, e.base+".mutate", g, mutateProperty, opts)
}

func (e *CypherNodeProperty[O, M, S, W]) Stats(ctx context.Context, g Graph, opts O) (S, error) {
	return CypherStats[S](ctx, e.caller, e.base+".stats", g, opts)
}

func (e *CypherNodeProperty[O, M, S, W]) Stream(ctx context.Context, g Graph, opts O) (*table.Table, error) {
	return e.caller.Stream(ctx, e.base+".stream", g, opts)
}

func (e *CypherNodeProperty[O, M, S, W]) Write(ctx context.Context, g Graph, writeProperty string, opts O) (W, error) {
	return CypherWrite[W](ctx, e.caller, e.base+".write", g, writeProperty, opts)
}

func (e *CypherNodeProperty[O, M, S, W]) Estimate(ctx context.Context, target EstimateTarget, opts O) (result.Estimation, error) {
	return e.caller.Estimate(ctx, e.base+".stats.estimate", target, opts)
}

// ArrowNodeProperty is the session counterpart of CypherNodeProperty.
type ArrowNodeProperty[O Options, M, S, W any] struct {
	caller   *ArrowCaller
	endpoint string
}

// NewArrowNodeProperty serves the job endpoint, e.g. "v2/centrality.pageRank".
func NewArrowNodeProperty[O Options, M, S, W any](caller *ArrowCaller, endpoint string) *ArrowNodeProperty[O, M, S, W] {
	return &ArrowNodeProperty[O, M, S, W]{caller: caller, endpoint: endpoint}
}

func (e *ArrowNodeProperty[O, M, S, W]) Mutate(ctx context.Context, g Graph, mutateProperty string, opts O) (M, error) {
	return ArrowMutate[M](ctx, e.caller, e.endpoint, g, mutateProperty, opts)
}

func (e *ArrowNodeProperty[O, M, S, W]) Stats(ctx context.Context, g Graph, opts O) (S, error) {
	return ArrowStats[S](ctx, e.caller, e.endpoint, g, opts)
}

func (e *ArrowNodeProperty[O, M, S, W]) Stream(ctx context.Context, g Graph, opts O) (*table.Table, error) {
	return e.caller.Stream(ctx, e.endpoint, g, opts)
}

func (e *ArrowNodeProperty[O, M, S, W]) Write(ctx context.Context, g Graph, writeProperty string, opts O) (W, error) {
	return ArrowWriteNodeProperty[W](ctx, e.caller, e.endpoint, g, writeProperty, opts)
}

func (e *ArrowNodeProperty[O, M, S, W]) Estimate(ctx context.Context, target EstimateTarget, opts O) (result.Estimation, error) {
	return e.caller.Estimate(ctx, e.endpoint, target, opts)
}
