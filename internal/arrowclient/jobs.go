package arrowclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/result"
	"github.com/vanshika/gdsclient/internal/table"
)

// Action types understood by the compute service.
const (
	ActionJobStatus          = "v2/jobs.status"
	ActionJobSummary         = "v2/jobs.results.summary"
	ActionMutateNodeProperty = "v2/results.nodeProperties.mutate"
	ActionMutateRelationship = "v2/results.relationships.mutate"
)

// Job states reported by the status action.
const (
	StatusDone    = "Done"
	StatusFailed  = "Failed"
	StatusAborted = "Aborted"
)

const defaultPollInterval = 200 * time.Millisecond

var (
	// ErrJobFailed is returned when a job ends in a failed or aborted state.
	ErrJobFailed = errors.New("job failed")
	// ErrEmptyResponse is returned when an action yields no result body.
	ErrEmptyResponse = errors.New("empty action response")
)

// JobStatus is the body of a status action.
type JobStatus struct {
	JobID    string `json:"jobId"`
	Status   string `json:"status"`
	Progress string `json:"progress,omitempty"`
	Error    string `json:"errorMessage,omitempty"`
}

// JobClient drives the submit, wait and fetch lifecycle of remote jobs.
type JobClient struct {
	transport    Transport
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewJobClient wraps transport. A non-positive pollInterval selects the default.
func NewJobClient(transport Transport, pollInterval time.Duration, logger *slog.Logger) *JobClient {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &JobClient{
		transport:    transport,
		pollInterval: pollInterval,
		logger:       logger.With("component", "arrow-jobs"),
	}
}

// RunJob submits config to endpoint and returns the job id assigned by the server.
func (c *JobClient) RunJob(ctx context.Context, endpoint string, config *params.Map) (string, error) {
	var res struct {
		JobID string `json:"jobId"`
	}
	if err := c.action(ctx, endpoint, config, &res); err != nil {
		return "", err
	}
	if res.JobID == "" {
		return "", fmt.Errorf("action %s: response carries no job id", endpoint)
	}
	c.logger.Debug("job submitted", "endpoint", endpoint, "job_id", res.JobID)
	return res.JobID, nil
}

// Status returns the current state of jobID.
func (c *JobClient) Status(ctx context.Context, jobID string) (JobStatus, error) {
	var status JobStatus
	err := c.action(ctx, ActionJobStatus, jobBody(jobID), &status)
	return status, err
}

// WaitForJob polls until jobID is done. Progress changes are logged when
// logProgress is set.
func (c *JobClient) WaitForJob(ctx context.Context, jobID string, logProgress bool) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	var lastProgress string
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		status, err := c.Status(ctx, jobID)
		if err != nil {
			return err
		}

		if logProgress && status.Progress != "" && status.Progress != lastProgress {
			lastProgress = status.Progress
			c.logger.Info("job progress", "job_id", jobID, "progress", status.Progress, "status", status.Status)
		}

		switch status.Status {
		case StatusDone:
			return nil
		case StatusFailed, StatusAborted:
			if status.Error != "" {
				return fmt.Errorf("%w: %s: %s", ErrJobFailed, jobID, status.Error)
			}
			return fmt.Errorf("%w: %s: %s", ErrJobFailed, jobID, status.Status)
		}
		timer.Reset(c.pollInterval)
	}
}

// Summary fetches the statistics row of a finished job.
func (c *JobClient) Summary(ctx context.Context, jobID string) (map[string]any, error) {
	var row map[string]any
	err := c.action(ctx, ActionJobSummary, jobBody(jobID), &row)
	return row, err
}

// Stream fetches the per-row results of a finished job.
func (c *JobClient) Stream(ctx context.Context, jobID string) (*table.Table, error) {
	ticket, err := json.Marshal(jobBody(jobID))
	if err != nil {
		return nil, err
	}
	return c.transport.GetStream(ctx, ticket)
}

// MutateNodeProperty stores the node results of jobID in the in-memory graph.
func (c *JobClient) MutateNodeProperty(ctx context.Context, jobID, property string) (map[string]any, error) {
	body := params.NewMap(
		params.KV("jobId", jobID),
		params.KV("mutateProperty", property),
	)
	var row map[string]any
	err := c.action(ctx, ActionMutateNodeProperty, body, &row)
	return row, err
}

// MutateRelationships stores the relationship results of jobID under relationshipType.
// An empty property leaves the relationships without a property.
func (c *JobClient) MutateRelationships(ctx context.Context, jobID, relationshipType, property string) (map[string]any, error) {
	body := params.NewMap(
		params.KV("jobId", jobID),
		params.KV("mutateRelationshipType", relationshipType),
	)
	if property != "" {
		body.Set("mutateProperty", property)
	}
	var row map[string]any
	err := c.action(ctx, ActionMutateRelationship, body, &row)
	return row, err
}

// Estimate asks the server for the memory estimation of endpoint.
func (c *JobClient) Estimate(ctx context.Context, endpoint string, config *params.Map) (map[string]any, error) {
	var row map[string]any
	err := c.action(ctx, endpoint+".estimate", config, &row)
	return row, err
}

// RunJobAndGetSummary submits a job, waits for it and returns its summary.
func (c *JobClient) RunJobAndGetSummary(ctx context.Context, endpoint string, config *params.Map) (map[string]any, error) {
	jobID, err := c.runAndWait(ctx, endpoint, config)
	if err != nil {
		return nil, err
	}
	return c.Summary(ctx, jobID)
}

// RunJobAndStream submits a job, waits for it and streams its results.
func (c *JobClient) RunJobAndStream(ctx context.Context, endpoint string, config *params.Map) (*table.Table, error) {
	jobID, err := c.runAndWait(ctx, endpoint, config)
	if err != nil {
		return nil, err
	}
	return c.Stream(ctx, jobID)
}

// RunJobAndMutate submits a job, stores its node results under mutateProperty and
// returns the summary merged with the mutation statistics.
func (c *JobClient) RunJobAndMutate(ctx context.Context, endpoint string, config *params.Map, mutateProperty string) (map[string]any, error) {
	jobID, err := c.runAndWait(ctx, endpoint, config)
	if err != nil {
		return nil, err
	}
	stats, err := c.MutateNodeProperty(ctx, jobID, mutateProperty)
	if err != nil {
		return nil, err
	}
	summary, err := c.Summary(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return result.Merge(summary, stats), nil
}

// RunJobAndMutateRelationships is RunJobAndMutate for relationship-producing jobs.
func (c *JobClient) RunJobAndMutateRelationships(ctx context.Context, endpoint string, config *params.Map, relationshipType, property string) (map[string]any, error) {
	jobID, err := c.runAndWait(ctx, endpoint, config)
	if err != nil {
		return nil, err
	}
	stats, err := c.MutateRelationships(ctx, jobID, relationshipType, property)
	if err != nil {
		return nil, err
	}
	summary, err := c.Summary(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return result.Merge(summary, stats), nil
}

// RunJobAndWrite submits a job and persists its results to the database through wb.
func (c *JobClient) RunJobAndWrite(ctx context.Context, endpoint string, config *params.Map, wb *WriteBack, graphName string, wc WriteConfig) (map[string]any, error) {
	if wb == nil {
		return nil, ErrNoWriteBack
	}
	jobID, err := c.runAndWait(ctx, endpoint, config)
	if err != nil {
		return nil, err
	}
	if wc.LogProgress == nil {
		logProgress := logProgressOf(config)
		wc.LogProgress = &logProgress
	}
	stats, err := wb.Write(ctx, graphName, jobID, wc)
	if err != nil {
		return nil, err
	}
	summary, err := c.Summary(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return result.Merge(summary, stats), nil
}

func (c *JobClient) runAndWait(ctx context.Context, endpoint string, config *params.Map) (string, error) {
	jobID, err := c.RunJob(ctx, endpoint, config)
	if err != nil {
		return "", err
	}
	if err := c.WaitForJob(ctx, jobID, logProgressOf(config)); err != nil {
		return "", err
	}
	return jobID, nil
}

func (c *JobClient) action(ctx context.Context, actionType string, body *params.Map, out any) error {
	if body == nil {
		body = params.NewMap()
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s: %w", actionType, err)
	}
	bodies, err := c.transport.DoAction(ctx, actionType, payload)
	if err != nil {
		return err
	}
	if len(bodies) == 0 {
		return fmt.Errorf("action %s: %w", actionType, ErrEmptyResponse)
	}
	if err := json.Unmarshal(bodies[0], out); err != nil {
		return fmt.Errorf("decode %s: %w", actionType, err)
	}
	return nil
}

func jobBody(jobID string) *params.Map {
	return params.NewMap(params.KV("jobId", jobID))
}

// logProgressOf reads the logProgress flag of a job config. Absent means true.
func logProgressOf(config *params.Map) bool {
	if config == nil {
		return true
	}
	v, ok := config.Get("logProgress")
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}
