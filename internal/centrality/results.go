// Package centrality exposes the node importance algorithms: PageRank,
// ArticleRank, Betweenness and Degree.
package centrality

import "github.com/vanshika/gdsclient/internal/algo"

// RankMutateResult is reported by the mutate mode of the PageRank family.
type RankMutateResult struct {
	algo.Summary           `mapstructure:",squash"`
	RanIterations          int64          `mapstructure:"ranIterations"`
	DidConverge            bool           `mapstructure:"didConverge"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
	MutateMillis           int64          `mapstructure:"mutateMillis"`
	NodePropertiesWritten  int64          `mapstructure:"nodePropertiesWritten"`
}

// RankStatsResult is reported by the stats mode of the PageRank family.
type RankStatsResult struct {
	algo.Summary           `mapstructure:",squash"`
	RanIterations          int64          `mapstructure:"ranIterations"`
	DidConverge            bool           `mapstructure:"didConverge"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
}

// RankWriteResult is reported by the write mode of the PageRank family.
type RankWriteResult struct {
	algo.Summary           `mapstructure:",squash"`
	RanIterations          int64          `mapstructure:"ranIterations"`
	DidConverge            bool           `mapstructure:"didConverge"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
	WriteMillis            int64          `mapstructure:"writeMillis"`
	NodePropertiesWritten  int64          `mapstructure:"nodePropertiesWritten"`
}

// MutateResult is reported by the mutate mode of Betweenness and Degree.
type MutateResult struct {
	algo.Summary           `mapstructure:",squash"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
	MutateMillis           int64          `mapstructure:"mutateMillis"`
	NodePropertiesWritten  int64          `mapstructure:"nodePropertiesWritten"`
}

// StatsResult is reported by the stats mode of Betweenness and Degree.
type StatsResult struct {
	algo.Summary           `mapstructure:",squash"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
}

// WriteResult is reported by the write mode of Betweenness and Degree.
type WriteResult struct {
	algo.Summary           `mapstructure:",squash"`
	CentralityDistribution map[string]any `mapstructure:"centralityDistribution"`
	WriteMillis            int64          `mapstructure:"writeMillis"`
	NodePropertiesWritten  int64          `mapstructure:"nodePropertiesWritten"`
}
