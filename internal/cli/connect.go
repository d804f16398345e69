package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/vanshika/gdsclient/internal/algo"
	"github.com/vanshika/gdsclient/internal/arrowclient"
	"github.com/vanshika/gdsclient/internal/config"
	"github.com/vanshika/gdsclient/internal/queryrunner"
	"github.com/vanshika/gdsclient/internal/session"
)

// clients holds the endpoints of one command run and the connections behind them.
type clients struct {
	Endpoints *session.Endpoints
	Runner    queryrunner.QueryRunner
	Transport arrowclient.Transport
}

type connector func(ctx context.Context, cfg config.Config, transport string, logger *slog.Logger) (*clients, error)

// Ping makes a round trip on every open connection.
func (c *clients) Ping(ctx context.Context) error {
	var errs []error
	if c.Transport != nil {
		errs = append(errs, c.Transport.Ping(ctx))
	}
	if c.Runner != nil {
		errs = append(errs, c.Runner.VerifyConnectivity(ctx))
	}
	return errors.Join(errs...)
}

// Close releases every open connection.
func (c *clients) Close(ctx context.Context) error {
	var errs []error
	if c.Transport != nil {
		errs = append(errs, c.Transport.Close())
	}
	if c.Runner != nil {
		errs = append(errs, c.Runner.Close(ctx))
	}
	return errors.Join(errs...)
}

func connect(ctx context.Context, cfg config.Config, transport string, logger *slog.Logger) (*clients, error) {
	if transport == transportArrow {
		return connectArrow(ctx, cfg, logger)
	}

	runner, err := newRunner(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return &clients{Endpoints: session.NewCypher(runner), Runner: runner}, nil
}

// connectArrow dials the session. A configured database is used for write-back.
func connectArrow(ctx context.Context, cfg config.Config, logger *slog.Logger) (*clients, error) {
	t, err := arrowclient.Dial(ctx, arrowclient.Options{
		Host:         cfg.Arrow.Host,
		Port:         cfg.Arrow.Port,
		TLS:          cfg.Arrow.TLS,
		Username:     cfg.Arrow.Username,
		Password:     cfg.Arrow.Password,
		PollInterval: cfg.Arrow.PollInterval,
	}, logger)
	if err != nil {
		return nil, err
	}
	c := &clients{Transport: t}

	var writeBack *arrowclient.WriteBack
	if cfg.Graph.URI != "" {
		runner, err := newRunner(ctx, cfg, logger)
		if err != nil {
			_ = t.Close()
			return nil, err
		}
		c.Runner = runner
		writeBack = arrowclient.NewWriteBack(runner)
	}

	jobs := arrowclient.NewJobClient(t, cfg.Arrow.PollInterval, logger)
	c.Endpoints = session.NewArrow(algo.NewArrowCaller(jobs, writeBack))
	return c, nil
}

func newRunner(ctx context.Context, cfg config.Config, logger *slog.Logger) (queryrunner.QueryRunner, error) {
	return queryrunner.NewNeo4jRunner(ctx, queryrunner.Options{
		URI:              cfg.Graph.URI,
		Database:         cfg.Graph.Database,
		Username:         cfg.Graph.Username,
		Password:         cfg.Graph.Password,
		MaxConnections:   cfg.Graph.MaxConnections,
		ProgressInterval: cfg.Graph.ProgressInterval,
	}, logger)
}

func promptPassword(transport string) (string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Password for the %s connection", transport)).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("password cannot be empty")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return password, nil
}
