// Package arrowclient talks to the session compute service over Arrow Flight.
package arrowclient

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/vanshika/gdsclient/internal/table"
)

// Transport is the subset of Flight RPCs the job protocol relies on.
type Transport interface {
	DoAction(ctx context.Context, actionType string, body []byte) ([][]byte, error)
	GetStream(ctx context.Context, ticket []byte) (*table.Table, error)
	Ping(ctx context.Context) error
	Close() error
}

// Options configures the Flight connection.
type Options struct {
	Host         string
	Port         int
	TLS          bool
	Username     string
	Password     string
	PollInterval time.Duration
}

// ErrMissingHost indicates the Arrow host is not provided.
var ErrMissingHost = errors.New("arrow host is required")

const authorizationHeader = "authorization"

// FlightTransport is a Transport backed by an authenticated Flight client.
type FlightTransport struct {
	client flight.Client
	token  string
	logger *slog.Logger
}

// Dial connects to the Flight endpoint and, when credentials are configured,
// exchanges them for a bearer token used on every later call.
func Dial(ctx context.Context, opts Options, logger *slog.Logger) (*FlightTransport, error) {
	if opts.Host == "" {
		return nil, ErrMissingHost
	}
	if logger == nil {
		logger = slog.Default()
	}

	creds := insecure.NewCredentials()
	if opts.TLS {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))
	client, err := flight.NewClientWithMiddleware(addr, nil, nil, grpc.WithTransportCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create flight client: %w", err)
	}

	t := &FlightTransport{
		client: client,
		logger: logger.With("component", "arrow-client", "addr", addr),
	}

	if opts.Username != "" {
		authCtx, err := client.AuthenticateBasicToken(ctx, opts.Username, opts.Password)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("authenticate flight client: %w", err)
		}
		if md, ok := metadata.FromOutgoingContext(authCtx); ok {
			if values := md.Get(authorizationHeader); len(values) > 0 {
				t.token = values[0]
			}
		}
	}

	return t, nil
}

func (t *FlightTransport) withAuth(ctx context.Context) context.Context {
	if t.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, authorizationHeader, t.token)
}

// DoAction runs a Flight action and collects every result body.
func (t *FlightTransport) DoAction(ctx context.Context, actionType string, body []byte) ([][]byte, error) {
	t.logger.Debug("flight action", "type", actionType)
	stream, err := t.client.DoAction(t.withAuth(ctx), &flight.Action{Type: actionType, Body: body})
	if err != nil {
		return nil, fmt.Errorf("action %s: %w", actionType, err)
	}

	var bodies [][]byte
	for {
		res, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("action %s: %w", actionType, err)
		}
		bodies = append(bodies, res.Body)
	}
	return bodies, nil
}

// GetStream fetches the record batches behind ticket as one table.
func (t *FlightTransport) GetStream(ctx context.Context, ticket []byte) (*table.Table, error) {
	stream, err := t.client.DoGet(t.withAuth(ctx), &flight.Ticket{Ticket: ticket})
	if err != nil {
		return nil, fmt.Errorf("get stream: %w", err)
	}

	rdr, err := flight.NewRecordReader(stream)
	if err != nil {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	defer rdr.Release()

	tbl := tableForSchema(rdr.Schema())
	for rdr.Next() {
		if err := appendRecord(tbl, rdr.Record()); err != nil {
			return nil, err
		}
	}
	if err := rdr.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read stream: %w", err)
	}
	return tbl, nil
}

// Ping lists the server's actions, which forces a round trip on the
// otherwise lazily dialled connection.
func (t *FlightTransport) Ping(ctx context.Context) error {
	stream, err := t.client.ListActions(t.withAuth(ctx), &flight.Empty{})
	if err != nil {
		return fmt.Errorf("list actions: %w", err)
	}
	for {
		_, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("list actions: %w", err)
		}
	}
}

// Close releases the underlying connection.
func (t *FlightTransport) Close() error {
	return t.client.Close()
}
