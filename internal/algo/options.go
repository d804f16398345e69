// Package algo holds the plumbing shared by every algorithm endpoint: common
// options, graph handles, estimation targets and the Cypher and Arrow callers.
package algo

import (
	"errors"

	"github.com/vanshika/gdsclient/internal/params"
)

// AllLabels and AllTypes select every node label or relationship type.
const (
	AllLabels = "*"
	AllTypes  = "*"
)

var (
	// ErrNotSupported is returned by endpoints a transport cannot serve.
	ErrNotSupported = errors.New("operation not supported by this transport")
	// ErrNoEstimateTarget is returned when an estimate names neither a graph nor a projection.
	ErrNoEstimateTarget = errors.New("either a graph or a projection config must be provided")
)

// Graph is a handle to a projected in-memory graph.
type Graph interface {
	Name() string
}

// NamedGraph refers to a projected graph by name.
type NamedGraph string

func (g NamedGraph) Name() string { return string(g) }

// Common carries the settings every algorithm accepts. Nil pointers and empty
// slices are left out of the request so the engine applies its defaults, except
// for the label and type filters which default to everything.
type Common struct {
	RelationshipTypes []string
	NodeLabels        []string
	Sudo              *bool
	LogProgress       *bool
	Username          *string
	Concurrency       *int
	JobID             *string
	WriteConcurrency  *int
}

// Base returns c. Embedding Common gives an options struct this method.
func (c Common) Base() Common { return c }

// Args returns the common configuration entries. WriteConcurrency is only sent by
// write operations and is not included.
func (c Common) Args() []params.Arg {
	return []params.Arg{
		params.KV("relationship_types", orAll(c.RelationshipTypes, AllTypes)),
		params.KV("node_labels", orAll(c.NodeLabels, AllLabels)),
		params.KV("sudo", c.Sudo),
		params.KV("log_progress", c.LogProgress),
		params.KV("username", c.Username),
		params.KV("concurrency", c.Concurrency),
		params.KV("job_id", c.JobID),
	}
}

// Logging reports whether progress should be logged. Unset means true.
func (c Common) Logging() bool {
	return c.LogProgress == nil || *c.LogProgress
}

func orAll(values []string, all string) []string {
	if len(values) == 0 {
		return []string{all}
	}
	return append([]string(nil), values...)
}

// Options is implemented by every per-algorithm options struct.
type Options interface {
	Base() Common
	AlgorithmArgs() []params.Arg
}

// ConfigArgs orders the arguments of a request: mode specific entries first, then
// the algorithm's own settings, then the common settings.
func ConfigArgs(opts Options, modeArgs ...params.Arg) []params.Arg {
	args := append([]params.Arg(nil), modeArgs...)
	args = append(args, opts.AlgorithmArgs()...)
	return append(args, opts.Base().Args()...)
}

// EstimateTarget is what a memory estimate is computed for: an existing graph or
// a projection that has not been created yet.
type EstimateTarget struct {
	graph      Graph
	projection *params.Map
}

// OnGraph estimates against an existing projected graph.
func OnGraph(g Graph) EstimateTarget { return EstimateTarget{graph: g} }

// OnProjection estimates against a projection described by cfg.
func OnProjection(cfg *params.Map) EstimateTarget { return EstimateTarget{projection: cfg} }

func (t EstimateTarget) validate() error {
	if t.graph == nil && t.projection == nil {
		return ErrNoEstimateTarget
	}
	return nil
}

// Summary holds the fields reported by every mode except stream.
type Summary struct {
	PreProcessingMillis  int64          `mapstructure:"preProcessingMillis"`
	ComputeMillis        int64          `mapstructure:"computeMillis"`
	PostProcessingMillis int64          `mapstructure:"postProcessingMillis"`
	Configuration        map[string]any `mapstructure:"configuration,omitempty"`
}
