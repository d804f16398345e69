package queryrunner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/table"
)

const userAgent = "gdsctl"

// NewNeo4jRunner opens a driver for opts.URI and checks the server is reachable
// before handing it out.
func NewNeo4jRunner(ctx context.Context, opts Options, logger *slog.Logger) (QueryRunner, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, authToken(opts), opts.configure)
	if err != nil {
		return nil, fmt.Errorf("open driver for %s: %w", opts.URI, err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("reach %s: %w", opts.URI, err)
	}

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &neo4jRunner{
		driver:           driver,
		database:         opts.Database,
		logger:           logger.With("component", "query-runner"),
		progressInterval: interval,
	}, nil
}

func authToken(opts Options) neo4j.AuthToken {
	if opts.Username == "" {
		return neo4j.NoAuth()
	}
	return neo4j.BasicAuth(opts.Username, opts.Password, "")
}

func (opts Options) configure(c *neo4j.Config) {
	c.UserAgent = userAgent
	if opts.MaxConnections > 0 {
		c.MaxConnectionPoolSize = opts.MaxConnections
	}
}

type neo4jRunner struct {
	driver           neo4j.DriverWithContext
	database         string
	logger           *slog.Logger
	progressInterval time.Duration
}

func (r *neo4jRunner) CallProcedure(ctx context.Context, endpoint string, p *params.CallParameters, logging bool) (*table.Table, error) {
	query := ProcedureQuery(endpoint, p)
	jobID, hasJobID := p.JobID()

	if logging && hasJobID {
		stop := startProgressWatch(ctx, r.logger, r.progressInterval, endpoint, jobID, func(ctx context.Context) (*table.Table, error) {
			return r.run(ctx, neo4j.AccessModeRead, listProgressQuery, map[string]any{"jobId": jobID})
		})
		defer stop()
	}

	r.logger.Debug("calling procedure", "endpoint", endpoint, "job_id", jobID)
	res, err := r.run(ctx, accessMode(endpoint), query, p.ToMap())
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", endpoint, err)
	}
	return res, nil
}

func (r *neo4jRunner) VerifyConnectivity(ctx context.Context) error {
	return r.driver.VerifyConnectivity(ctx)
}

func (r *neo4jRunner) Close(ctx context.Context) error {
	return r.driver.Close(ctx)
}

func (r *neo4jRunner) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) (*table.Table, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.database,
		AccessMode:   mode,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	return consumeResult(ctx, res)
}

// accessMode routes procedures that persist to the database to a writer.
func accessMode(endpoint string) neo4j.AccessMode {
	if strings.HasSuffix(endpoint, ".write") {
		return neo4j.AccessModeWrite
	}
	return neo4j.AccessModeRead
}

func consumeResult(ctx context.Context, res neo4j.ResultWithContext) (*table.Table, error) {
	keys, err := res.Keys()
	if err != nil {
		return nil, err
	}
	tbl := table.New(keys...)
	for res.Next(ctx) {
		rec := res.Record()
		values := make([]any, len(keys))
		for i, key := range keys {
			values[i], _ = rec.Get(key)
		}
		if err := tbl.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return tbl, nil
}
