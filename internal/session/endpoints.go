// Package session groups the algorithm endpoints behind one handle, backed by
// either session jobs over Arrow Flight or procedure calls over Cypher.
package session

import (
	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/centrality"
	"github.com/vanshika/gdsclient/internal/community"
	"github.com/vanshika/gdsclient/internal/pathfinding"
	"github.com/vanshika/gdsclient/internal/queryrunner"
	"github.com/vanshika/gdsclient/internal/similarity"
)

// Endpoints exposes one endpoint set per algorithm.
type Endpoints struct {
	pageRank    centrality.PageRankEndpoints
	articleRank centrality.ArticleRankEndpoints
	betweenness centrality.BetweennessEndpoints
	degree      centrality.DegreeEndpoints
	louvain     community.LouvainEndpoints
	wcc         community.WCCEndpoints
	knn         similarity.KNNEndpoints
	dijkstra    pathfinding.DijkstraEndpoints
}

// NewArrow serves every algorithm as session jobs.
func NewArrow(caller *algo.ArrowCaller) *Endpoints {
	return &Endpoints{
		pageRank:    centrality.NewPageRankArrow(caller),
		articleRank: centrality.NewArticleRankArrow(caller),
		betweenness: centrality.NewBetweennessArrow(caller),
		degree:      centrality.NewDegreeArrow(caller),
		louvain:     community.NewLouvainArrow(caller),
		wcc:         community.NewWCCArrow(caller),
		knn:         similarity.NewKNNArrow(caller),
		dijkstra:    pathfinding.NewDijkstraArrow(caller),
	}
}

// NewCypher serves every algorithm through procedure calls on runner.
func NewCypher(runner queryrunner.QueryRunner) *Endpoints {
	caller := algo.NewCypherCaller(runner)
	return &Endpoints{
		pageRank:    centrality.NewPageRankCypher(caller),
		articleRank: centrality.NewArticleRankCypher(caller),
		betweenness: centrality.NewBetweennessCypher(caller),
		degree:      centrality.NewDegreeCypher(caller),
		louvain:     community.NewLouvainCypher(caller),
		wcc:         community.NewWCCCypher(caller),
		knn:         similarity.NewKNNCypher(caller),
		dijkstra:    pathfinding.NewDijkstraCypher(caller),
	}
}

func (e *Endpoints) PageRank() centrality.PageRankEndpoints       { return e.pageRank }
func (e *Endpoints) ArticleRank() centrality.ArticleRankEndpoints { return e.articleRank }
func (e *Endpoints) Betweenness() centrality.BetweennessEndpoints { return e.betweenness }
func (e *Endpoints) Degree() centrality.DegreeEndpoints           { return e.degree }
func (e *Endpoints) Louvain() community.LouvainEndpoints          { return e.louvain }
func (e *Endpoints) WCC() community.WCCEndpoints                  { return e.wcc }
func (e *Endpoints) KNN() similarity.KNNEndpoints                 { return e.knn }
func (e *Endpoints) Dijkstra() pathfinding.DijkstraEndpoints      { return e.dijkstra }
