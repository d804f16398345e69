// Package pathfinding exposes shortest path algorithms.
package pathfinding

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// DijkstraOptions configures a source-target Dijkstra search.
type DijkstraOptions struct {
	algo.Common
	SourceNode                 int64
	TargetNode                 int64
	RelationshipWeightProperty *string
	// WriteNodeIDs and WriteCosts add the path nodes and costs to written relationships.
	WriteNodeIDs *bool
	WriteCosts   *bool
}

func (o DijkstraOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("source_node", o.SourceNode),
		params.KV("target_node", o.TargetNode),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// DijkstraMutateResult is reported by the mutate mode.
type DijkstraMutateResult struct {
	algo.Summary         `mapstructure:",squash"`
	MutateMillis         int64 `mapstructure:"mutateMillis"`
	RelationshipsWritten int64 `mapstructure:"relationshipsWritten"`
}

// DijkstraWriteResult is reported by the write mode.
type DijkstraWriteResult struct {
	algo.Summary         `mapstructure:",squash"`
	WriteMillis          int64 `mapstructure:"writeMillis"`
	RelationshipsWritten int64 `mapstructure:"relationshipsWritten"`
}

// DijkstraEndpoints finds the shortest path between two nodes. There is no stats
// mode. Stream yields index, sourceNode, targetNode, totalCost, nodeIds, costs and,
// over Cypher, path.
type DijkstraEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType string, opts DijkstraOptions) (DijkstraMutateResult, error)
	Stream(ctx context.Context, g algo.Graph, opts DijkstraOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeRelationshipType string, opts DijkstraOptions) (DijkstraWriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts DijkstraOptions) (result.Estimation, error)
}

const (
	dijkstraProcedure = "gds.shortestPath.dijkstra"
	dijkstraJob       = "v2/pathfinding.sourceTarget.dijkstra"
)

type dijkstraCypher struct {
	caller *algo.CypherCaller
}

// NewDijkstraCypher serves Dijkstra through gds.shortestPath.dijkstra procedures.
func NewDijkstraCypher(caller *algo.CypherCaller) DijkstraEndpoints {
	return &dijkstraCypher{caller: caller}
}

func (e *dijkstraCypher) Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType string, opts DijkstraOptions) (DijkstraMutateResult, error) {
	return algo.CypherRow[DijkstraMutateResult](ctx, e.caller, dijkstraProcedure+".mutate", g, opts,
		params.KV("mutate_relationship_type", mutateRelationshipType),
	)
}

func (e *dijkstraCypher) Stream(ctx context.Context, g algo.Graph, opts DijkstraOptions) (*table.Table, error) {
	return e.caller.Stream(ctx, dijkstraProcedure+".stream", g, opts)
}

func (e *dijkstraCypher) Write(ctx context.Context, g algo.Graph, writeRelationshipType string, opts DijkstraOptions) (DijkstraWriteResult, error) {
	return algo.CypherRow[DijkstraWriteResult](ctx, e.caller, dijkstraProcedure+".write", g, opts,
		params.KV("write_relationship_type", writeRelationshipType),
		params.KV("write_node_ids", opts.WriteNodeIDs),
		params.KV("write_costs", opts.WriteCosts),
		params.KV("write_concurrency", opts.WriteConcurrency),
	)
}

func (e *dijkstraCypher) Estimate(ctx context.Context, target algo.EstimateTarget, opts DijkstraOptions) (result.Estimation, error) {
	return e.caller.Estimate(ctx, dijkstraProcedure+".stream.estimate", target, opts)
}

type dijkstraArrow struct {
	caller *algo.ArrowCaller
}

// NewDijkstraArrow serves Dijkstra as session jobs.
func NewDijkstraArrow(caller *algo.ArrowCaller) DijkstraEndpoints {
	return &dijkstraArrow{caller: caller}
}

func (e *dijkstraArrow) Mutate(ctx context.Context, g algo.Graph, mutateRelationshipType string, opts DijkstraOptions) (DijkstraMutateResult, error) {
	return algo.ArrowMutateRelationships[DijkstraMutateResult](ctx, e.caller, dijkstraJob, g, mutateRelationshipType, "", opts)
}

func (e *dijkstraArrow) Stream(ctx context.Context, g algo.Graph, opts DijkstraOptions) (*table.Table, error) {
	tbl, err := e.caller.Stream(ctx, dijkstraJob, g, opts)
	if err != nil {
		return nil, err
	}
	renamed, err := algo.RenameNodeEndpoints(tbl)
	if err != nil {
		return nil, err
	}
	return algo.WithIndex(renamed)
}

func (e *dijkstraArrow) Write(ctx context.Context, g algo.Graph, writeRelationshipType string, opts DijkstraOptions) (DijkstraWriteResult, error) {
	return algo.ArrowWrite[DijkstraWriteResult](ctx, e.caller, dijkstraJob, g,
		arrowclient.WriteConfig{RelationshipTypeOverwrite: writeRelationshipType}, opts)
}

func (e *dijkstraArrow) Estimate(ctx context.Context, target algo.EstimateTarget, opts DijkstraOptions) (result.Estimation, error) {
	return e.caller.Estimate(ctx, dijkstraJob, target, opts)
}
