package queryrunner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanshika/gdsclient/internal/table"
)

const listProgressQuery = `
CALL gds.listProgress($jobId)
YIELD taskName, progress, status
RETURN taskName, progress, status`

type progressFetcher func(ctx context.Context) (*table.Table, error)

// startProgressWatch polls the engine for the progress of jobID until the returned
// stop function is called. stop blocks until the poller has exited.
func startProgressWatch(ctx context.Context, logger *slog.Logger, interval time.Duration, endpoint, jobID string, fetch progressFetcher) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		pollProgress(ctx, logger, interval, endpoint, jobID, fetch)
	}()

	return func() {
		cancel()
		<-done
	}
}

func pollProgress(ctx context.Context, logger *slog.Logger, interval time.Duration, endpoint, jobID string, fetch progressFetcher) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		tbl, err := fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// The job may not be registered yet.
			logger.Debug("progress poll failed", "endpoint", endpoint, "job_id", jobID, "error", err)
			continue
		}
		if tbl.Len() == 0 {
			continue
		}

		row := tbl.Row(0)
		progress := fmt.Sprint(row["progress"])
		if progress == last {
			continue
		}
		last = progress
		logger.Info("procedure progress",
			"endpoint", endpoint,
			"job_id", jobID,
			"task", row["taskName"],
			"progress", progress,
			"status", row["status"],
		)
	}
}
