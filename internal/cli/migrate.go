package cli

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/cashflow_backend/internal/platform/migrations"
	"github.com/spf13/cobra"
)

func newMigrateCmd(a *app) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(a, func(r *migrations.Runner) error {
				if err := r.Up(); err != nil {
					return err
				}
				return printVersion(cmd, r)
			})
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Example: `  # Roll back the last migration
  cashflowctl migrate down

  # Roll back the last three migrations
  cashflowctl migrate down --steps 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			return withRunner(a, func(r *migrations.Runner) error {
				if err := r.Down(steps); err != nil {
					return err
				}
				a.logger.Info("Migrations rolled back", slog.Int("steps", steps))
				return printVersion(cmd, r)
			})
		},
	}
	downCmd.Flags().Int("steps", 1, "Number of migrations to roll back")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(a, func(r *migrations.Runner) error {
				return printVersion(cmd, r)
			})
		},
	}

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func withRunner(a *app, fn func(r *migrations.Runner) error) error {
	r, err := migrations.NewRunner(a.cfg.MigrationsPath, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer r.Close()
	return fn(r)
}

func printVersion(cmd *cobra.Command, r *migrations.Runner) error {
	v, dirty, err := r.Version()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty)\n", v)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}
