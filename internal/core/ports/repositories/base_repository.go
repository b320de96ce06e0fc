package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// LifecycleManager moves a record through ACTIVE -> DELETED -> ACTIVE, or removes it for good.
// MarkDeleted and Restore return apperrors.ErrInvalidState when the record is already in the target state
// and apperrors.ErrNotFound when it does not exist. They only touch deleted_at; the actor is kept in the audit log.
type LifecycleManager interface {
	MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
}

// TxLifecycleManager is LifecycleManager bound to a caller-owned transaction.
type TxLifecycleManager interface {
	MarkDeletedInTx(ctx context.Context, tx pgx.Tx, id string, deletedAt time.Time) error
	RestoreInTx(ctx context.Context, tx pgx.Tx, id string) error
	PurgeInTx(ctx context.Context, tx pgx.Tx, id string) error
}
