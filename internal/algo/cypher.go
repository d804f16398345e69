package algo

import (
	"context"
	"fmt"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/queryrunner"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// CypherCaller runs algorithms as procedure calls on the database.
type CypherCaller struct {
	runner queryrunner.QueryRunner
}

// NewCypherCaller returns a CypherCaller issuing calls through runner.
func NewCypherCaller(runner queryrunner.QueryRunner) *CypherCaller {
	return &CypherCaller{runner: runner}
}

func (c *CypherCaller) call(ctx context.Context, endpoint string, g Graph, opts Options, modeArgs ...params.Arg) (*table.Table, error) {
	cfg := params.ToGDSConfig(ConfigArgs(opts, modeArgs...)...)
	p := params.NewCallParameters(
		params.KV("graph_name", g.Name()),
		params.KV("config", cfg),
	)
	if _, err := p.EnsureJobIDInConfig(); err != nil {
		return nil, err
	}
	return c.runner.CallProcedure(ctx, endpoint, p, opts.Base().Logging())
}

// Stream runs endpoint and returns its rows unchanged.
func (c *CypherCaller) Stream(ctx context.Context, endpoint string, g Graph, opts Options) (*table.Table, error) {
	return c.call(ctx, endpoint, g, opts)
}

// Estimate runs the estimate variant endpoint for target.
func (c *CypherCaller) Estimate(ctx context.Context, endpoint string, target EstimateTarget, opts Options) (result.Estimation, error) {
	if err := target.validate(); err != nil {
		return result.Estimation{}, err
	}

	var graph any = target.projection
	if target.graph != nil {
		graph = target.graph.Name()
	}
	p := params.NewCallParameters(
		params.KV("graph_name_or_projection_config", graph),
		params.KV("algo_config", params.ToGDSConfig(ConfigArgs(opts)...)),
	)
	tbl, err := c.runner.CallProcedure(ctx, endpoint, p, false)
	if err != nil {
		return result.Estimation{}, err
	}
	row, err := tbl.Squeeze()
	if err != nil {
		return result.Estimation{}, fmt.Errorf("%s: %w", endpoint, err)
	}
	return result.EstimationFromCypher(row)
}

// CypherRow runs endpoint and decodes its single row into R.
func CypherRow[R any](ctx context.Context, c *CypherCaller, endpoint string, g Graph, opts Options, modeArgs ...params.Arg) (R, error) {
	var zero R
	tbl, err := c.call(ctx, endpoint, g, opts, modeArgs...)
	if err != nil {
		return zero, err
	}
	row, err := tbl.Squeeze()
	if err != nil {
		return zero, fmt.Errorf("%s: %w", endpoint, err)
	}
	return result.Decode[R](row)
}

// CypherMutate runs a node property mutate endpoint.
func CypherMutate[R any](ctx context.Context, c *CypherCaller, endpoint string, g Graph, mutateProperty string, opts Options) (R, error) {
	return CypherRow[R](ctx, c, endpoint, g, opts, params.KV("mutate_property", mutateProperty))
}

// CypherStats runs a stats endpoint.
func CypherStats[R any](ctx context.Context, c *CypherCaller, endpoint string, g Graph, opts Options) (R, error) {
	return CypherRow[R](ctx, c, endpoint, g, opts)
}

// CypherWrite runs a node property write endpoint.
func CypherWrite[R any](ctx context.Context, c *CypherCaller, endpoint string, g Graph, writeProperty string, opts Options) (R, error) {
	return CypherRow[R](ctx, c, endpoint, g, opts,
		params.KV("write_property", writeProperty),
		params.KV("write_concurrency", opts.Base().WriteConcurrency),
	)
}
