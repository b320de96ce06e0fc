package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	invoiceColumns = `invoice_id, customer_id, total_amount, due_date, status, balance_due,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertInvoiceQuery = `
		INSERT INTO invoices (invoice_id, customer_id, total_amount, due_date, status, balance_due, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	findInvoiceForUpdateQuery = `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 FOR UPDATE`

	updateInvoiceQuery = `
		UPDATE invoices
		SET customer_id = $2, total_amount = $3, due_date = $4, status = $5, balance_due = $6,
			last_updated_at = GREATEST(last_updated_at, $7), last_updated_by = $8
		WHERE invoice_id = $1`

	paymentColumns = `payment_id, invoice_id, amount, payment_date, payment_method, account_id,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertPaymentQuery = `
		INSERT INTO payments (payment_id, invoice_id, amount, payment_date, payment_method, account_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	updatePaymentQuery = `
		UPDATE payments
		SET amount = $2, payment_date = $3, payment_method = $4, account_id = $5,
			last_updated_at = GREATEST(last_updated_at, $6), last_updated_by = $7
		WHERE payment_id = $1 AND deleted_at IS NULL`

	activePaymentAmountsQuery = `SELECT amount FROM payments WHERE invoice_id = $1 AND deleted_at IS NULL`
)

type PgxInvoiceRepository struct {
	pgxLifecycleStore
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "invoices", "invoice_id"),
	}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice) error {
	_, err := r.Pool.Exec(ctx, insertInvoiceQuery,
		inv.InvoiceID, inv.CustomerID, inv.TotalAmount, inv.DueDate, inv.Status, inv.BalanceDue,
		inv.CreatedAt, inv.CreatedBy, inv.LastUpdatedAt, inv.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save invoice %s: %w", inv.InvoiceID, translatePgError(err))
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return collectOne[domain.Invoice](ctx, r.Pool, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1`, invoiceID)
}

// FindInvoiceByIDForUpdate locks the invoice row so concurrent payment writes on the same invoice serialize.
func (r *PgxInvoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	return collectOne[domain.Invoice](ctx, tx, findInvoiceForUpdateQuery, invoiceID)
}

func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, customerID *string, opts domain.ListOptions) ([]domain.Invoice, error) {
	opts = opts.Normalize()
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ($3::uuid IS NULL OR customer_id = $3)` +
		activeClause(opts.IncludeDeleted, "AND") +
		` ORDER BY due_date, invoice_id LIMIT $1 OFFSET $2`
	invoices, err := collectMany[domain.Invoice](ctx, r.Pool, query, opts.Limit, opts.Offset, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, inv domain.Invoice) error {
	return execOne(ctx, tx, updateInvoiceQuery,
		inv.InvoiceID, inv.CustomerID, inv.TotalAmount, inv.DueDate, inv.Status, inv.BalanceDue,
		inv.LastUpdatedAt, inv.LastUpdatedBy,
	)
}

type PgxPaymentRepository struct {
	pgxLifecycleStore
}

func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		pgxLifecycleStore: newLifecycleStore(BaseRepository{Pool: pool}, "payments", "payment_id"),
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

func (r *PgxPaymentRepository) SavePaymentInTx(ctx context.Context, tx pgx.Tx, p domain.Payment) error {
	_, err := tx.Exec(ctx, insertPaymentQuery,
		p.PaymentID, p.InvoiceID, p.Amount, p.PaymentDate, p.PaymentMethod, p.AccountID,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment %s: %w", p.PaymentID, translatePgError(err))
	}
	return nil
}

// UpdatePaymentInTx only writes an active payment; a deleted one yields apperrors.ErrInvalidState.
func (r *PgxPaymentRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, p domain.Payment) error {
	tag, err := tx.Exec(ctx, updatePaymentQuery,
		p.PaymentID, p.Amount, p.PaymentDate, p.PaymentMethod, p.AccountID,
		p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return r.unmatched(ctx, tx, p.PaymentID, "deleted")
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return collectOne[domain.Payment](ctx, r.Pool, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, paymentID)
}

func (r *PgxPaymentRepository) ListPayments(ctx context.Context, invoiceID *string, opts domain.ListOptions) ([]domain.Payment, error) {
	opts = opts.Normalize()
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ($3::uuid IS NULL OR invoice_id = $3)` +
		activeClause(opts.IncludeDeleted, "AND") +
		` ORDER BY payment_date, created_at, payment_id LIMIT $1 OFFSET $2`
	payments, err := collectMany[domain.Payment](ctx, r.Pool, query, opts.Limit, opts.Offset, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *PgxPaymentRepository) ListActivePaymentAmountsInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]decimal.Decimal, error) {
	rows, err := tx.Query(ctx, activePaymentAmountsQuery, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment amounts for invoice %s: %w", invoiceID, translatePgError(err))
	}
	amounts, err := pgx.CollectRows(rows, pgx.RowTo[decimal.Decimal])
	if err != nil {
		return nil, fmt.Errorf("failed to scan payment amounts for invoice %s: %w", invoiceID, err)
	}
	return amounts, nil
}
