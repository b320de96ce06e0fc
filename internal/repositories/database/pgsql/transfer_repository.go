package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transferColumns = `transfer_id, from_account_id, to_account_id, amount, description,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertTransferQuery = `
		INSERT INTO transfers (transfer_id, from_account_id, to_account_id, amount, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	findTransferByIDQuery = `SELECT ` + transferColumns + ` FROM transfers WHERE transfer_id = $1`

	updateTransferQuery = `
		UPDATE transfers
		SET description = $2, last_updated_at = GREATEST(last_updated_at, $3), last_updated_by = $4
		WHERE transfer_id = $1`
)

type PgxTransferRepository struct {
	pgxLifecycleStore
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryFacade {
	return &PgxTransferRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "transfers", "transfer_id"),
	}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

// SaveTransferInTx inserts a transfer as part of the transaction that moves the balances.
func (r *PgxTransferRepository) SaveTransferInTx(ctx context.Context, tx pgx.Tx, t domain.Transfer) error {
	_, err := tx.Exec(ctx, insertTransferQuery,
		t.TransferID,
		t.FromAccountID,
		t.ToAccountID,
		t.Amount,
		t.Description,
		t.CreatedAt,
		t.CreatedBy,
		t.LastUpdatedAt,
		t.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transfer %s: %w", t.TransferID, translatePgError(err))
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	return collectOne[domain.Transfer](ctx, r.Pool, findTransferByIDQuery, transferID)
}

// ListTransfers returns transfers newest first.
func (r *PgxTransferRepository) ListTransfers(ctx context.Context, opts domain.ListOptions) ([]domain.Transfer, error) {
	opts = opts.Normalize()
	query := `SELECT ` + transferColumns + ` FROM transfers` + activeClause(opts.IncludeDeleted, "WHERE") +
		` ORDER BY created_at DESC, transfer_id LIMIT $1 OFFSET $2`
	transfers, err := collectMany[domain.Transfer](ctx, r.Pool, query, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	return transfers, nil
}

func (r *PgxTransferRepository) UpdateTransfer(ctx context.Context, t domain.Transfer) error {
	return execOne(ctx, r.Pool, updateTransferQuery, t.TransferID, t.Description, t.LastUpdatedAt, t.LastUpdatedBy)
}
