// Package queryrunner runs Cypher statements and procedure calls on the engine.
package queryrunner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vanshika/gdsclient/internal/params"
	"github.com/vanshika/gdsclient/internal/table"
)

// QueryRunner defines the minimal contract the algorithm endpoints need to invoke
// procedures on the graph data science engine.
type QueryRunner interface {
	CallProcedure(ctx context.Context, endpoint string, p *params.CallParameters, logging bool) (*table.Table, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Options configures a query runner implementation.
type Options struct {
	URI              string
	Database         string
	Username         string
	Password         string
	MaxConnections   int
	ProgressInterval time.Duration
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")

const defaultProgressInterval = 500 * time.Millisecond

// ProcedureQuery renders the CALL statement for endpoint with one placeholder per parameter.
func ProcedureQuery(endpoint string, p *params.CallParameters) string {
	return fmt.Sprintf("CALL %s(%s)", endpoint, p.PlaceholderStr())
}
