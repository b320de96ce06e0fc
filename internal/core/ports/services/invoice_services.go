package services

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	GetInvoiceByID(ctx context.Context, invoiceID string, includeDeleted bool) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, customerID *string, opts domain.ListOptions) ([]domain.Invoice, error)

	// GetSettlement recomputes the invoice's settlement from its active payments.
	GetSettlement(ctx context.Context, invoiceID string) (domain.Settlement, error)
}

// InvoiceWriterSvc defines write operations for invoices
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice edits customer, total or due date; a changed total re-settles the invoice.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)
}

type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	LifecycleSvc
}

// PaymentSvcFacade records payments. Every change to the set of active payments of an invoice
// re-settles that invoice in the same transaction.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, paymentID string, includeDeleted bool) (*domain.Payment, error)
	ListPayments(ctx context.Context, invoiceID *string, opts domain.ListOptions) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)
	LifecycleSvc
}
