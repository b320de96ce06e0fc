package repositories

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	// ListInvoices lists invoices, optionally of one customer.
	ListInvoices(ctx context.Context, customerID *string, opts domain.ListOptions) ([]domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoices
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByIDForUpdate reads the invoice and locks its row until tx ends.
	FindInvoiceByIDForUpdate(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoiceInTx writes customer, total, due date and the derived settlement fields.
	UpdateInvoiceInTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
	LifecycleManager
	TransactionManager
}

// PaymentReader defines read operations for payments
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	// ListPayments lists payments, optionally of one invoice.
	ListPayments(ctx context.Context, invoiceID *string, opts domain.ListOptions) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payments. All of them run inside the transaction
// that holds the invoice row lock so the invoice settlement can be recomputed atomically.
type PaymentWriter interface {
	SavePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.Payment) error

	// ListActivePaymentAmountsInTx returns the amounts of the invoice's non-deleted payments.
	ListActivePaymentAmountsInTx(ctx context.Context, tx pgx.Tx, invoiceID string) ([]decimal.Decimal, error)
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
	TxLifecycleManager
}
