package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the query surface shared by *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
	pgInvalidTextRepr     = "22P02"
	pgSerializationFail   = "40001"
	pgDeadlockDetected    = "40P01"
	pgLockNotAvailable    = "55P03"
)

// translatePgError maps Postgres error codes onto the application's error kinds.
// Errors it does not recognise are returned unchanged.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, constraintDetail(pgErr))
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: referenced record does not exist (%s)", apperrors.ErrValidation, pgErr.ConstraintName)
	case pgCheckViolation, pgNotNullViolation:
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, constraintDetail(pgErr))
	case pgInvalidTextRepr:
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, pgErr.Message)
	case pgSerializationFail, pgDeadlockDetected, pgLockNotAvailable:
		return fmt.Errorf("%w: %s", apperrors.ErrConcurrencyConflict, pgErr.Message)
	}
	return err
}

func constraintDetail(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	if pgErr.ConstraintName != "" {
		return "constraint " + pgErr.ConstraintName + " violated"
	}
	return pgErr.Message
}

// collectOne runs a single-row query and scans it into T by column name.
func collectOne[T any](ctx context.Context, db dbtx, query string, args ...any) (*T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		return nil, translatePgError(err)
	}
	return rec, nil
}

// collectMany runs a query and scans every row into T by column name.
func collectMany[T any](ctx context.Context, db dbtx, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	recs, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, translatePgError(err)
	}
	return recs, nil
}

// execOne runs a statement that must touch exactly one row; zero rows means the record does not exist.
func execOne(ctx context.Context, db dbtx, query string, args ...any) error {
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// activeClause is appended to list queries unless deleted rows were asked for.
func activeClause(includeDeleted bool, prefix string) string {
	if includeDeleted {
		return ""
	}
	return " " + prefix + " deleted_at IS NULL"
}
