package arrowclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/queryrunner"
)

const writeBackEndpoint = "gds.arrow.write"

// ErrNoWriteBack is returned by write operations on a session without a database connection.
var ErrNoWriteBack = errors.New("write-back requires a database connection")

// WriteConfig controls how job results are persisted.
type WriteConfig struct {
	// PropertyOverwrites renames the written node or relationship property.
	PropertyOverwrites string
	// RelationshipTypeOverwrite sets the type of written relationships.
	RelationshipTypeOverwrite string
	Concurrency               *int
	LogProgress               *bool
}

// WriteBack persists finished job results into the database behind runner.
type WriteBack struct {
	runner queryrunner.QueryRunner
}

// NewWriteBack returns a WriteBack issuing procedure calls through runner.
func NewWriteBack(runner queryrunner.QueryRunner) *WriteBack {
	return &WriteBack{runner: runner}
}

// Write streams the results of jobID from the session into the database.
func (w *WriteBack) Write(ctx context.Context, graphName, jobID string, wc WriteConfig) (map[string]any, error) {
	configuration := params.NewMap()
	if wc.PropertyOverwrites != "" {
		configuration.Set("propertyOverwrites", wc.PropertyOverwrites)
	}
	if wc.RelationshipTypeOverwrite != "" {
		configuration.Set("relationshipTypeOverwrite", wc.RelationshipTypeOverwrite)
	}
	if wc.Concurrency != nil {
		configuration.Set("concurrency", *wc.Concurrency)
	}

	logProgress := true
	if wc.LogProgress != nil {
		logProgress = *wc.LogProgress
	}

	p := params.NewCallParameters(
		params.KV("graphName", graphName),
		params.KV("jobId", jobID),
		params.KV("configuration", configuration),
	)
	tbl, err := w.runner.CallProcedure(ctx, writeBackEndpoint, p, logProgress)
	if err != nil {
		return nil, fmt.Errorf("write back job %s: %w", jobID, err)
	}
	if tbl.Len() == 0 {
		return map[string]any{}, nil
	}
	return tbl.Squeeze()
}
