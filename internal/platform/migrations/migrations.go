package migrations

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies the SQL migrations in sourceURL to the database at databaseURL.
type Runner struct {
	m *migrate.Migrate
}

// NewRunner opens a migrate instance. Close must be called when done.
func NewRunner(sourceURL, databaseURL string) (*Runner, error) {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	return &Runner{m: m}, nil
}

// Up applies all pending migrations. Having nothing to apply is not an error.
func (r *Runner) Up() error {
	if err := r.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	slog.Info("Database migrations applied successfully.")
	return nil
}

// Down rolls back steps migrations.
func (r *Runner) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := r.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back %d migrations: %w", steps, err)
	}
	return nil
}

// Version reports the current schema version and whether the last migration failed half-way.
func (r *Runner) Version() (uint, bool, error) {
	v, dirty, err := r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func (r *Runner) Close() {
	srcErr, dbErr := r.m.Close()
	if srcErr != nil || dbErr != nil {
		slog.Warn("Failed to close migration resources", "source_error", srcErr, "database_error", dbErr)
	}
}

// RunUp is the one-shot form used on server start.
func RunUp(sourceURL, databaseURL string) error {
	r, err := NewRunner(sourceURL, databaseURL)
	if err != nil {
		return err
	}
	defer r.Close()
	return r.Up()
}
