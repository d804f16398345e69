package community

import (
	"context"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// WCCOptions configures weakly connected components.
type WCCOptions struct {
	algo.Common
	SeedProperty               *string
	Threshold                  *float64
	ConsecutiveIDs             *bool
	MinComponentSize           *int
	RelationshipWeightProperty *string
}

func (o WCCOptions) AlgorithmArgs() []params.Arg {
	return []params.Arg{
		params.KV("seed_property", o.SeedProperty),
		params.KV("threshold", o.Threshold),
		params.KV("consecutive_ids", o.ConsecutiveIDs),
		params.KV("min_component_size", o.MinComponentSize),
		params.KV("relationship_weight_property", o.RelationshipWeightProperty),
	}
}

// WCCStatsResult is reported by the stats mode.
type WCCStatsResult struct {
	algo.Summary          `mapstructure:",squash"`
	ComponentCount        int64          `mapstructure:"componentCount"`
	ComponentDistribution map[string]any `mapstructure:"componentDistribution"`
}

// WCCMutateResult is reported by the mutate mode.
type WCCMutateResult struct {
	WCCStatsResult        `mapstructure:",squash"`
	MutateMillis          int64 `mapstructure:"mutateMillis"`
	NodePropertiesWritten int64 `mapstructure:"nodePropertiesWritten"`
}

// WCCWriteResult is reported by the write mode.
type WCCWriteResult struct {
	WCCStatsResult        `mapstructure:",squash"`
	WriteMillis           int64 `mapstructure:"writeMillis"`
	NodePropertiesWritten int64 `mapstructure:"nodePropertiesWritten"`
}

// WCCEndpoints runs weakly connected components in every execution mode.
type WCCEndpoints interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts WCCOptions) (WCCMutateResult, error)
	Stats(ctx context.Context, g algo.Graph, opts WCCOptions) (WCCStatsResult, error)
	Stream(ctx context.Context, g algo.Graph, opts WCCOptions) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts WCCOptions) (WCCWriteResult, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts WCCOptions) (result.Estimation, error)
}

// NewWCCCypher serves WCC through gds.wcc procedures.
func NewWCCCypher(caller *algo.CypherCaller) WCCEndpoints {
	return algo.NewCypherNodeProperty[WCCOptions, WCCMutateResult, WCCStatsResult, WCCWriteResult](caller, "gds.wcc")
}

// NewWCCArrow serves WCC as session jobs.
func NewWCCArrow(caller *algo.ArrowCaller) WCCEndpoints {
	return algo.NewArrowNodeProperty[WCCOptions, WCCMutateResult, WCCStatsResult, WCCWriteResult](caller, "v2/community.wcc")
}
