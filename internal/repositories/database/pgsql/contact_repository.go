package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxContactRepository serves customer_contacts or vendor_contacts; the two tables differ only in
// the owner column, which is exposed as owner_id.
type PgxContactRepository struct {
	pgxLifecycleStore
	ownerColumn string
	selectSQL   string
	insertSQL   string
	updateSQL   string
}

func newPgxContactRepository(pool *pgxpool.Pool, owner domain.ContactOwner) portsrepo.ContactRepositoryFacade {
	table, ownerColumn := "customer_contacts", "customer_id"
	if owner == domain.ContactOwnerVendor {
		table, ownerColumn = "vendor_contacts", "vendor_id"
	}

	return &PgxContactRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, table, "contact_id"),
		ownerColumn:       ownerColumn,
		selectSQL: `SELECT contact_id, ` + ownerColumn + ` AS owner_id, contact_type, contact_value,
			created_at, created_by, last_updated_at, last_updated_by, deleted_at FROM ` + table,
		insertSQL: `INSERT INTO ` + table + ` (contact_id, ` + ownerColumn + `, contact_type, contact_value,
			created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		updateSQL: `UPDATE ` + table + `
			SET contact_type = $2, contact_value = $3, last_updated_at = GREATEST(last_updated_at, $4), last_updated_by = $5
			WHERE contact_id = $1`,
	}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

func (r *PgxContactRepository) SaveContact(ctx context.Context, c domain.Contact) error {
	_, err := r.Pool.Exec(ctx, r.insertSQL,
		c.ContactID, c.OwnerID, c.ContactType, c.ContactValue,
		c.CreatedAt, c.CreatedBy, c.LastUpdatedAt, c.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact %s: %w", c.ContactID, translatePgError(err))
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	return collectOne[domain.Contact](ctx, r.Pool, r.selectSQL+` WHERE contact_id = $1`, contactID)
}

func (r *PgxContactRepository) ListContacts(ctx context.Context, ownerID *string, opts domain.ListOptions) ([]domain.Contact, error) {
	opts = opts.Normalize()
	query := r.selectSQL + ` WHERE ($3::uuid IS NULL OR ` + r.ownerColumn + ` = $3)` +
		activeClause(opts.IncludeDeleted, "AND") +
		` ORDER BY created_at, contact_id LIMIT $1 OFFSET $2`
	contacts, err := collectMany[domain.Contact](ctx, r.Pool, query, opts.Limit, opts.Offset, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, c domain.Contact) error {
	return execOne(ctx, r.Pool, r.updateSQL, c.ContactID, c.ContactType, c.ContactValue, c.LastUpdatedAt, c.LastUpdatedBy)
}
