package centrality

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// Orientation selects which relationships count towards a node's degree.
type Orientation string

const (
	Natural    Orientation = "NATURAL"
	Reverse    Orientation = "REVERSE"
	Undirected Orientation = "UNDIRECTED"
)

func (o Orientation) GDSValue() any {
	if o == "" {
		return nil
	}
	return string(o)
}

// DegreeOptions configures Degree centrality.
type DegreeOptions struct {
	algo.Common
	Orientation                Orientation
	RelationshipWeightProperty *string
}

func (o DegreeOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("orientation", o.Orientation),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// DegreeEndpoints runs Degree centrality in every execution mode.
type DegreeEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts DegreeOptions) (MutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts DegreeOptions) (StatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts DegreeOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts DegreeOptions) (WriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts DegreeOptions) (result.Estimation, error)
}

// NewDegreeCypher serves Degree through gds.degree procedures.
func NewDegreeCypher(caller *algo.CypherCaller) DegreeEndpoints {
	return algo.NewCypherNodeProperty[DegreeOptions, MutateResult, StatsResult, WriteResult](caller, "gds.degree")
}

// NewDegreeArrow serves Degree as session jobs.
func NewDegreeArrow(caller *algo.ArrowCaller) DegreeEndpoints {
	return algo.NewArrowNodeProperty[DegreeOptions, MutateResult, StatsResult, WriteResult](caller, "v2/centrality.degree")
}
