package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxLifecycleStore implements soft delete, restore and purge for a table with a deleted_at column.
// Entity repositories embed it.
type pgxLifecycleStore struct {
	BaseRepository
	table    string
	idColumn string

	softDeleteSQL string
	restoreSQL    string
	purgeSQL      string
	stateSQL      string
}

func newLifecycleStore(base BaseRepository, table, idColumn string) pgxLifecycleStore {
	return pgxLifecycleStore{
		BaseRepository: base,
		table:          table,
		idColumn:       idColumn,
		softDeleteSQL:  `UPDATE ` + table + ` SET deleted_at = $2 WHERE ` + idColumn + ` = $1 AND deleted_at IS NULL`,
		restoreSQL:     `UPDATE ` + table + ` SET deleted_at = NULL WHERE ` + idColumn + ` = $1 AND deleted_at IS NOT NULL`,
		purgeSQL:       `DELETE FROM ` + table + ` WHERE ` + idColumn + ` = $1`,
		stateSQL:       `SELECT deleted_at FROM ` + table + ` WHERE ` + idColumn + ` = $1`,
	}
}

// Soft delete and restore only move deleted_at, so a round trip leaves every other column as it was.

func (s *pgxLifecycleStore) MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	return s.transition(ctx, s.Pool, s.softDeleteSQL, "already deleted", id, deletedAt)
}

func (s *pgxLifecycleStore) Restore(ctx context.Context, id string) error {
	return s.transition(ctx, s.Pool, s.restoreSQL, "not deleted", id)
}

func (s *pgxLifecycleStore) Purge(ctx context.Context, id string) error {
	return s.purge(ctx, s.Pool, id)
}

func (s *pgxLifecycleStore) MarkDeletedInTx(ctx context.Context, tx pgx.Tx, id string, deletedAt time.Time) error {
	return s.transition(ctx, tx, s.softDeleteSQL, "already deleted", id, deletedAt)
}

func (s *pgxLifecycleStore) RestoreInTx(ctx context.Context, tx pgx.Tx, id string) error {
	return s.transition(ctx, tx, s.restoreSQL, "not deleted", id)
}

func (s *pgxLifecycleStore) PurgeInTx(ctx context.Context, tx pgx.Tx, id string) error {
	return s.purge(ctx, tx, id)
}

// transition applies a conditional state change keyed by id (always $1).
func (s *pgxLifecycleStore) transition(ctx context.Context, db dbtx, query, stateMsg, id string, args ...any) error {
	tag, err := db.Exec(ctx, query, append([]any{id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update lifecycle of %s %s: %w", s.table, id, translatePgError(err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	return s.unmatched(ctx, db, id, stateMsg)
}

// unmatched explains why a guarded statement touched no row: the record is missing (ErrNotFound)
// or it exists in the wrong state (ErrInvalidState).
func (s *pgxLifecycleStore) unmatched(ctx context.Context, db dbtx, id, stateMsg string) error {
	var deletedAt *time.Time
	if err := db.QueryRow(ctx, s.stateSQL, id).Scan(&deletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read state of %s %s: %w", s.table, id, translatePgError(err))
	}
	return fmt.Errorf("%w: record is %s", apperrors.ErrInvalidState, stateMsg)
}

func (s *pgxLifecycleStore) purge(ctx context.Context, db dbtx, id string) error {
	tag, err := db.Exec(ctx, s.purgeSQL, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: record is still referenced (%s)", apperrors.ErrInvalidState, pgErr.ConstraintName)
		}
		return fmt.Errorf("failed to purge %s %s: %w", s.table, id, translatePgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
