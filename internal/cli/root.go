// Package cli implements cashflowctl, the maintenance command line for the cashflow backend.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/core/services"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/platform/mailer"
	"github.com/SscSPs/cashflow_backend/internal/repositories/database/pgsql"
	"github.com/SscSPs/cashflow_backend/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// app carries the state shared by all subcommands. The database is only opened by commands that need it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
}

// services opens the database pool and wires the same service container as the HTTP server.
func (a *app) services(ctx context.Context) (*portssvc.ServiceContainer, error) {
	if a.pool == nil {
		pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL, true)
		if err != nil {
			return nil, err
		}
		a.pool = pool
	}
	return services.NewServiceContainer(a.cfg, pgsql.NewRepositoryProvider(a.pool), mailer.New(a.cfg.Mail)), nil
}

func (a *app) close() {
	if a.pool != nil {
		database.ClosePgxPool(a.pool)
		a.pool = nil
	}
}

// NewRootCmd builds the cashflowctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "cashflowctl",
		Short: "Maintenance commands for the cashflow backend",
		Long: `cashflowctl runs database migrations, cleans up expired tokens and manages user roles.

It reads the same environment variables (and .env file) as the server, PGSQL_URL in particular.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
			slog.SetDefault(a.logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.AddCommand(newMigrateCmd(a), newTokensCmd(a), newUsersCmd(a))
	return root
}

// Execute runs cashflowctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
