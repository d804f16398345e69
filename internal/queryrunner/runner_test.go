package queryrunner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/table"
)

func TestProcedureQuery(t *testing.T) {
	p := params.NewCallParameters(
		params.KV("graph_name", "g"),
		params.KV("config", params.NewMap()),
	)
	assert.Equal(t, "CALL gds.pageRank.stream($graph_name, $config)", ProcedureQuery("gds.pageRank.stream", p))
	assert.Equal(t, "CALL gds.version()", ProcedureQuery("gds.version", params.NewCallParameters()))
}

func TestAccessMode(t *testing.T) {
	assert.Equal(t, neo4j.AccessModeWrite, accessMode("gds.pageRank.write"))
	assert.Equal(t, neo4j.AccessModeWrite, accessMode("gds.arrow.write"))
	assert.Equal(t, neo4j.AccessModeRead, accessMode("gds.pageRank.mutate"))
	assert.Equal(t, neo4j.AccessModeRead, accessMode("gds.pageRank.stream.estimate"))
}

func TestNewNeo4jRunnerRequiresURI(t *testing.T) {
	_, err := NewNeo4jRunner(context.Background(), Options{}, nil)
	assert.ErrorIs(t, err, ErrMissingURI)
}

func TestDriverSettings(t *testing.T) {
	var c neo4j.Config
	Options{MaxConnections: 3}.configure(&c)
	assert.Equal(t, 3, c.MaxConnectionPoolSize)
	assert.Equal(t, userAgent, c.UserAgent)

	assert.Equal(t, neo4j.NoAuth(), authToken(Options{Password: "ignored"}))
	assert.Equal(t, "neo4j", authToken(Options{Username: "neo4j", Password: "pw"}).Tokens["principal"])
}

func TestMemoryRunner(t *testing.T) {
	mem := NewMemoryRunner()
	mem.PushRow(map[string]any{"b": 2, "a": 1})

	cfg := params.NewMap(params.KV("concurrency", 4))
	p := params.NewCallParameters(params.KV("graph_name", "g"), params.KV("config", cfg))

	res, err := mem.CallProcedure(context.Background(), "gds.wcc.stats", p, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Columns())

	calls := mem.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gds.wcc.stats", calls[0].Endpoint)
	assert.Equal(t, "CALL gds.wcc.stats($graph_name, $config)", calls[0].Query)
	assert.True(t, calls[0].Logging)
	assert.Equal(t, map[string]any{"concurrency": 4}, calls[0].Params["config"])

	empty, err := mem.CallProcedure(context.Background(), "gds.wcc.stats", p, false)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	require.Len(t, mem.Calls(), 2)

	boom := errors.New("boom")
	mem.WithError(boom)
	_, err = mem.CallProcedure(context.Background(), "gds.wcc.stats", p, false)
	assert.ErrorIs(t, err, boom)

	mem.WithConnectivityError(boom)
	assert.ErrorIs(t, mem.VerifyConnectivity(context.Background()), boom)
}

func TestProgressWatchLogsChanges(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	progress := []string{"10%", "10%", "50%", "100%"}
	var (
		mu      sync.Mutex
		calls   int
		reached = make(chan struct{})
		once    sync.Once
	)
	fetch := func(context.Context) (*table.Table, error) {
		mu.Lock()
		defer mu.Unlock()
		idx := calls
		calls++
		if idx >= len(progress)-1 {
			once.Do(func() { close(reached) })
			idx = len(progress) - 1
		}
		tbl := table.New("taskName", "progress", "status")
		_ = tbl.AppendRow("PageRank", progress[idx], "RUNNING")
		return tbl, nil
	}

	stop := startProgressWatch(context.Background(), logger, time.Millisecond, "gds.pageRank.write", "job-1", fetch)
	select {
	case <-reached:
	case <-time.After(5 * time.Second):
		t.Fatal("progress poller did not run")
	}
	stop()

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "procedure progress"))
	assert.Contains(t, out, "job_id=job-1")
	assert.Contains(t, out, "progress=50%")
}
