// Package cli implements the gdsctl command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vanshika/gdsclient/internal/config"
	"github.com/vanshika/gdsclient/internal/logging"
)

const (
	transportCypher = "cypher"
	transportArrow  = "arrow"
)

var errUnknownTransport = errors.New("transport must be 'cypher' or 'arrow'")

type globalFlags struct {
	configFile     string
	transport      string
	output         string
	promptPassword bool
}

// Execute runs the root command. Cancelling ctx aborts a running job wait.
func Execute(ctx context.Context) error {
	return newRootCmd(connect).ExecuteContext(ctx)
}

func newRootCmd(conn connector) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "gdsctl",
		Short: "gdsctl - run graph algorithms against a database or a session",
		Long: `gdsctl runs graph algorithms on projected graphs, either as procedure calls
on the database (--transport cypher) or as jobs on a session (--transport arrow).

Commands:
  ping       Check connectivity
  stream     Return one row per node, pair or path
  stats      Return aggregate statistics only
  mutate     Store results in the in-memory graph
  write      Persist results to the database
  estimate   Estimate memory requirements`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configFile, "config", "", "config file (yaml)")
	root.PersistentFlags().StringVar(&g.transport, "transport", transportCypher, "transport: cypher or arrow")
	root.PersistentFlags().StringVarP(&g.output, "output", "o", formatTable, "output format: table, json or yaml")
	root.PersistentFlags().BoolVar(&g.promptPassword, "prompt-password", false, "prompt for the password instead of reading it from config")

	root.AddCommand(newPingCmd(g, conn))
	for _, mode := range modes {
		root.AddCommand(newModeCmd(mode, g, conn))
	}
	return root
}

// setup loads configuration and builds the logger shared by every command.
func (g *globalFlags) setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	if g.transport != transportCypher && g.transport != transportArrow {
		return config.Config{}, nil, fmt.Errorf("%w, got %q", errUnknownTransport, g.transport)
	}
	if err := validateFormat(g.output); err != nil {
		return config.Config{}, nil, err
	}

	cfg, err := config.Load(g.configFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	if g.promptPassword {
		password, err := promptPassword(g.transport)
		if err != nil {
			return config.Config{}, nil, err
		}
		if g.transport == transportArrow {
			cfg.Arrow.Password = password
		} else {
			cfg.Graph.Password = password
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(cfg.Logging, cmd.ErrOrStderr()), nil
}

func newPingCmd(g *globalFlags, conn connector) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check connectivity to the configured transport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.setup(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := conn(ctx, cfg, g.transport, logger)
			if err != nil {
				return err
			}
			defer c.Close(ctx)

			if err := c.Ping(ctx); err != nil {
				return fmt.Errorf("ping %s: %w", g.transport, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", g.transport)
			return nil
		},
	}
}
