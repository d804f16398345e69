package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/centrality"
	"github.com/vanshika/gdsclient/internal/community"
	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/pathfinding"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/session"
	"github.com/vanshika/gdsclient/internal/similarity"
	"github.com/vanshika/gdsclient/internal/table"
)

const (
	modeStream   = "stream"
	modeStats    = "stats"
	modeMutate   = "mutate"
	modeWrite    = "write"
	modeEstimate = "estimate"
)

var modes = []string{modeStream, modeStats, modeMutate, modeWrite, modeEstimate}

var modeSummaries = map[string]string{
	modeStream:   "Run an algorithm and return its rows",
	modeStats:    "Run an algorithm and return aggregate statistics",
	modeMutate:   "Run an algorithm and store results in the in-memory graph",
	modeWrite:    "Run an algorithm and persist results to the database",
	modeEstimate: "Estimate the memory needed to run an algorithm",
}

var (
	errUnknownAlgorithm = errors.New("unknown algorithm")
	errMissingFlag      = errors.New("missing required flag")
)

type runFunc func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error)

type algorithm struct {
	description string
	run         runFunc
}

var algorithms = map[string]algorithm{
	"pagerank": {"PageRank centrality", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		return runNodeProperty[centrality.RankOptions, centrality.RankMutateResult, centrality.RankStatsResult, centrality.RankWriteResult](ctx, ep.PageRank(), mode, f, f.rankOptions())
	}},
	"articlerank": {"ArticleRank centrality", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		return runNodeProperty[centrality.RankOptions, centrality.RankMutateResult, centrality.RankStatsResult, centrality.RankWriteResult](ctx, ep.ArticleRank(), mode, f, f.rankOptions())
	}},
	"betweenness": {"Betweenness centrality", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		opts := centrality.BetweennessOptions{
			Common:                     f.common(),
			SamplingSize:               f.optInt("sampling-size", f.samplingSize),
			RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
		}
		return runNodeProperty[centrality.BetweennessOptions, centrality.MutateResult, centrality.StatsResult, centrality.WriteResult](ctx, ep.Betweenness(), mode, f, opts)
	}},
	"degree": {"Degree centrality", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		opts := centrality.DegreeOptions{
			Common:                     f.common(),
			Orientation:                centrality.Orientation(f.orientation),
			RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
		}
		return runNodeProperty[centrality.DegreeOptions, centrality.MutateResult, centrality.StatsResult, centrality.WriteResult](ctx, ep.Degree(), mode, f, opts)
	}},
	"louvain": {"Louvain community detection", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		opts := community.LouvainOptions{
			Common:                     f.common(),
			MaxIterations:              f.optInt("max-iterations", f.maxIterations),
			RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
		}
		return runNodeProperty[community.LouvainOptions, community.LouvainMutateResult, community.LouvainStatsResult, community.LouvainWriteResult](ctx, ep.Louvain(), mode, f, opts)
	}},
	"wcc": {"Weakly connected components", func(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
		opts := community.WCCOptions{
			Common:                     f.common(),
			RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
		}
		return runNodeProperty[community.WCCOptions, community.WCCMutateResult, community.WCCStatsResult, community.WCCWriteResult](ctx, ep.WCC(), mode, f, opts)
	}},
	"knn":      {"K-nearest neighbours similarity", runKNN},
	"dijkstra": {"Dijkstra source-target shortest path", runDijkstra},
}

func algorithmNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// algoFlags holds the flags of a mode command. Optional settings are only sent
// when the flag was given explicitly.
type algoFlags struct {
	fs *pflag.FlagSet

	graph                 string
	estimateNodes         int64
	estimateRelationships int64
	property              string
	relationshipType      string
	nodeLabels            []string
	relationshipTypes     []string
	concurrency           int
	writeConcurrency      int
	jobID                 string
	logProgress           bool
	maxIterations         int
	dampingFactor         float64
	samplingSize          int
	orientation           string
	weightProperty        string
	sourceNode            int64
	targetNode            int64
	nodeProperties        []string
	topK                  int
	describe              string
}

func (f *algoFlags) register(fs *pflag.FlagSet, mode string) {
	f.fs = fs
	fs.StringVar(&f.graph, "graph", "", "name of the projected graph")
	fs.StringSliceVar(&f.nodeLabels, "node-labels", nil, "node labels to include (default all)")
	fs.StringSliceVar(&f.relationshipTypes, "relationship-types", nil, "relationship types to include (default all)")
	fs.IntVar(&f.concurrency, "concurrency", 0, "concurrency of the computation")
	fs.StringVar(&f.jobID, "job-id", "", "job id to track the run with")
	fs.BoolVar(&f.logProgress, "log-progress", true, "log progress of the run")
	fs.IntVar(&f.maxIterations, "max-iterations", 0, "maximum number of iterations")
	fs.Float64Var(&f.dampingFactor, "damping-factor", 0, "damping factor (pagerank, articlerank)")
	fs.IntVar(&f.samplingSize, "sampling-size", 0, "number of source nodes to sample (betweenness)")
	fs.StringVar(&f.orientation, "orientation", "", "NATURAL, REVERSE or UNDIRECTED (degree)")
	fs.StringVar(&f.weightProperty, "weight-property", "", "relationship weight property")
	fs.Int64Var(&f.sourceNode, "source-node", 0, "source node id (dijkstra)")
	fs.Int64Var(&f.targetNode, "target-node", 0, "target node id (dijkstra)")
	fs.StringSliceVar(&f.nodeProperties, "node-properties", nil, "node properties to compare (knn)")
	fs.IntVar(&f.topK, "top-k", 0, "neighbours per node (knn)")

	switch mode {
	case modeMutate, modeWrite:
		fs.StringVar(&f.property, "property", "", "property receiving the results")
		fs.StringVar(&f.relationshipType, "relationship-type", "", "relationship type receiving the results (knn, dijkstra)")
		if mode == modeWrite {
			fs.IntVar(&f.writeConcurrency, "write-concurrency", 0, "concurrency of the write")
		}
	case modeStream:
		fs.StringVar(&f.describe, "describe", "", "summarise a numeric column instead of printing rows")
	case modeEstimate:
		fs.Int64Var(&f.estimateNodes, "node-count", 0, "estimate for a hypothetical graph with this many nodes")
		fs.Int64Var(&f.estimateRelationships, "relationship-count", 0, "relationship count of the hypothetical graph")
	}
}

func (f *algoFlags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

func (f *algoFlags) optInt(name string, v int) *int {
	if !f.changed(name) {
		return nil
	}
	return params.Ptr(v)
}

func (f *algoFlags) optString(name, v string) *string {
	if !f.changed(name) {
		return nil
	}
	return params.Ptr(v)
}

func (f *algoFlags) common() algo.Common {
	c := algo.Common{
		NodeLabels:        f.nodeLabels,
		RelationshipTypes: f.relationshipTypes,
		Concurrency:       f.optInt("concurrency", f.concurrency),
		WriteConcurrency:  f.optInt("write-concurrency", f.writeConcurrency),
		JobID:             f.optString("job-id", f.jobID),
	}
	if f.changed("log-progress") {
		c.LogProgress = params.Ptr(f.logProgress)
	}
	return c
}

func (f *algoFlags) rankOptions() centrality.RankOptions {
	opts := centrality.RankOptions{
		Common:                     f.common(),
		MaxIterations:              f.optInt("max-iterations", f.maxIterations),
		RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
	}
	if f.changed("damping-factor") {
		opts.DampingFactor = params.Ptr(f.dampingFactor)
	}
	return opts
}

func (f *algoFlags) graphHandle() (algo.Graph, error) {
	if f.graph == "" {
		return nil, fmt.Errorf("%w: --graph", errMissingFlag)
	}
	return algo.NamedGraph(f.graph), nil
}

// estimateTarget prefers a named graph and falls back to a hypothetical graph of
// all labels and types sized by --node-count and --relationship-count.
func (f *algoFlags) estimateTarget() algo.EstimateTarget {
	if f.graph != "" {
		return algo.OnGraph(algo.NamedGraph(f.graph))
	}
	if f.estimateNodes > 0 {
		return algo.OnProjection(params.NewMap(
			params.KV("nodeProjection", algo.AllLabels),
			params.KV("relationshipProjection", algo.AllTypes),
			params.KV("nodeCount", f.estimateNodes),
			params.KV("relationshipCount", f.estimateRelationships),
		))
	}
	return algo.EstimateTarget{}
}

func (f *algoFlags) require(name, v string) error {
	if v == "" {
		return fmt.Errorf("%w: --%s", errMissingFlag, name)
	}
	return nil
}

type nodePropertyEndpoints[O algo.Options, M, S, W any] interface {
	Mutate(ctx context.Context, g algo.Graph, mutateProperty string, opts O) (M, error)
	Stats(ctx context.Context, g algo.Graph, opts O) (S, error)
	Stream(ctx context.Context, g algo.Graph, opts O) (*table.Table, error)
	Write(ctx context.Context, g algo.Graph, writeProperty string, opts O) (W, error)
	Estimate(ctx context.Context, target algo.EstimateTarget, opts O) (result.Estimation, error)
}

func runNodeProperty[O algo.Options, M, S, W any](ctx context.Context, ep nodePropertyEndpoints[O, M, S, W], mode string, f *algoFlags, opts O) (any, error) {
	if mode == modeEstimate {
		return ep.Estimate(ctx, f.estimateTarget(), opts)
	}
	g, err := f.graphHandle()
	if err != nil {
		return nil, err
	}

	switch mode {
	case modeStream:
		return ep.Stream(ctx, g, opts)
	case modeStats:
		return ep.Stats(ctx, g, opts)
	case modeMutate:
		if err := f.require("property", f.property); err != nil {
			return nil, err
		}
		return ep.Mutate(ctx, g, f.property, opts)
	case modeWrite:
		if err := f.require("property", f.property); err != nil {
			return nil, err
		}
		return ep.Write(ctx, g, f.property, opts)
	}
	return nil, fmt.Errorf("mode %s: %w", mode, algo.ErrNotSupported)
}

func runKNN(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
	opts := similarity.KNNOptions{
		Common:        f.common(),
		TopK:          f.optInt("top-k", f.topK),
		MaxIterations: f.optInt("max-iterations", f.maxIterations),
	}
	if len(f.nodeProperties) > 0 {
		opts.NodeProperties = similarity.Properties(f.nodeProperties...)
	}

	knn := ep.KNN()
	if mode == modeEstimate {
		return knn.Estimate(ctx, f.estimateTarget(), opts)
	}
	g, err := f.graphHandle()
	if err != nil {
		return nil, err
	}

	switch mode {
	case modeStream:
		return knn.Stream(ctx, g, opts)
	case modeStats:
		return knn.Stats(ctx, g, opts)
	case modeMutate, modeWrite:
		if err := f.require("relationship-type", f.relationshipType); err != nil {
			return nil, err
		}
		if err := f.require("property", f.property); err != nil {
			return nil, err
		}
		if mode == modeMutate {
			return knn.Mutate(ctx, g, f.relationshipType, f.property, opts)
		}
		return knn.Write(ctx, g, f.relationshipType, f.property, opts)
	}
	return nil, fmt.Errorf("mode %s: %w", mode, algo.ErrNotSupported)
}

func runDijkstra(ctx context.Context, ep *session.Endpoints, mode string, f *algoFlags) (any, error) {
	opts := pathfinding.DijkstraOptions{
		Common:                     f.common(),
		SourceNode:                 f.sourceNode,
		TargetNode:                 f.targetNode,
		RelationshipWeightProperty: f.optString("weight-property", f.weightProperty),
	}

	dijkstra := ep.Dijkstra()
	if mode == modeEstimate {
		return dijkstra.Estimate(ctx, f.estimateTarget(), opts)
	}
	g, err := f.graphHandle()
	if err != nil {
		return nil, err
	}

	switch mode {
	case modeStream:
		return dijkstra.Stream(ctx, g, opts)
	case modeMutate, modeWrite:
		if err := f.require("relationship-type", f.relationshipType); err != nil {
			return nil, err
		}
		if mode == modeMutate {
			return dijkstra.Mutate(ctx, g, f.relationshipType, opts)
		}
		return dijkstra.Write(ctx, g, f.relationshipType, opts)
	}
	return nil, fmt.Errorf("dijkstra %s: %w", mode, algo.ErrNotSupported)
}

func newModeCmd(mode string, g *globalFlags, conn connector) *cobra.Command {
	f := &algoFlags{}
	cmd := &cobra.Command{
		Use:       mode + " <algorithm>",
		Short:     modeSummaries[mode],
		Long:      modeSummaries[mode] + ".\n\nAlgorithms:\n" + algorithmList(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: algorithmNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, ok := algorithms[args[0]]
			if !ok {
				return fmt.Errorf("%w %q (known: %v)", errUnknownAlgorithm, args[0], algorithmNames())
			}

			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := conn(ctx, cfg, g.transport, logger)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			res, err := alg.run(ctx, c.Endpoints, mode, f)
			if err != nil {
				return err
			}
			if tbl, ok := res.(*table.Table); ok && f.describe != "" {
				summary, err := tbl.Describe(f.describe)
				if err != nil {
					return err
				}
				res = summary
			}
			return render(cmd.OutOrStdout(), res, g.output)
		},
	}
	f.register(cmd.Flags(), mode)
	return cmd
}

func algorithmList() string {
	var out string
	for _, name := range algorithmNames() {
		out += fmt.Sprintf("  %-12s %s\n", name, algorithms[name].description)
	}
	return out
}
