package algo

import (
	"context"

	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// ArrowCaller runs algorithms as jobs on a session over Arrow Flight. Write
// operations need a WriteBack; without one they fail with arrowclient.ErrNoWriteBack.
type ArrowCaller struct {
	jobs      *arrowclient.JobClient
	writeBack *arrowclient.WriteBack
}

// NewArrowCaller returns an ArrowCaller. writeBack may be nil.
func NewArrowCaller(jobs *arrowclient.JobClient, writeBack *arrowclient.WriteBack) *ArrowCaller {
	return &ArrowCaller{jobs: jobs, writeBack: writeBack}
}

func jobConfig(g Graph, opts Options) *params.Map {
	return params.ToGDSConfig(ConfigArgs(opts, params.KV("graph_name", g.Name()))...)
}

// Stream runs the job and returns its rows.
func (c *ArrowCaller) Stream(ctx context.Context, endpoint string, g Graph, opts Options) (*table.Table, error) {
	return c.jobs.RunJobAndStream(ctx, endpoint, jobConfig(g, opts))
}

// Estimate asks the session for the memory estimate of endpoint on target.
func (c *ArrowCaller) Estimate(ctx context.Context, endpoint string, target EstimateTarget, opts Options) (result.Estimation, error) {
	if err := target.validate(); err != nil {
		return result.Estimation{}, err
	}

	cfg := params.NewMap()
	if target.graph != nil {
		cfg.Set("graphName", target.graph.Name())
	} else {
		cfg.Set("projectionConfig", target.projection)
	}
	cfg.Merge(params.ToGDSConfig(ConfigArgs(opts)...))

	row, err := c.jobs.Estimate(ctx, endpoint, cfg)
	if err != nil {
		return result.Estimation{}, err
	}
	return result.EstimationFromCypher(row)
}

// ArrowStats runs the job and decodes its summary into R.
func ArrowStats[R any](ctx context.Context, c *ArrowCaller, endpoint string, g Graph, opts Options) (R, error) {
	var zero R
	row, err := c.jobs.RunJobAndGetSummary(ctx, endpoint, jobConfig(g, opts))
	if err != nil {
		return zero, err
	}
	return result.Decode[R](row)
}

// ArrowMutate runs the job and stores its node results under mutateProperty.
func ArrowMutate[R any](ctx context.Context, c *ArrowCaller, endpoint string, g Graph, mutateProperty string, opts Options) (R, error) {
	var zero R
	row, err := c.jobs.RunJobAndMutate(ctx, endpoint, jobConfig(g, opts), mutateProperty)
	if err != nil {
		return zero, err
	}
	return result.Decode[R](row)
}

// ArrowMutateRelationships runs the job and stores its relationship results.
func ArrowMutateRelationships[R any](ctx context.Context, c *ArrowCaller, endpoint string, g Graph, relationshipType, property string, opts Options) (R, error) {
	var zero R
	row, err := c.jobs.RunJobAndMutateRelationships(ctx, endpoint, jobConfig(g, opts), relationshipType, property)
	if err != nil {
		return zero, err
	}
	return result.Decode[R](row)
}

// ArrowWrite runs the job and writes its results back to the database.
func ArrowWrite[R any](ctx context.Context, c *ArrowCaller, endpoint string, g Graph, wc arrowclient.WriteConfig, opts Options) (R, error) {
	var zero R
	base := opts.Base()
	if wc.Concurrency == nil {
		wc.Concurrency = base.WriteConcurrency
	}
	if wc.LogProgress == nil {
		wc.LogProgress = base.LogProgress
	}
	row, err := c.jobs.RunJobAndWrite(ctx, endpoint, jobConfig(g, opts), c.writeBack, g.Name(), wc)
	if err != nil {
		return zero, err
	}
	return result.Decode[R](row)
}

// ArrowWriteNodeProperty is ArrowWrite for algorithms producing one node property.
func ArrowWriteNodeProperty[R any](ctx context.Context, c *ArrowCaller, endpoint string, g Graph, writeProperty string, opts Options) (R, error) {
	return ArrowWrite[R](ctx, c, endpoint, g, arrowclient.WriteConfig{PropertyOverwrites: writeProperty}, opts)
}
