package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// settler recomputes an invoice's status and balance due from its active payments.
// Callers hold the invoice row lock in tx.
type settler struct {
	invoiceRepo portsrepo.InvoiceWriter
	paymentRepo portsrepo.PaymentWriter
}

func (s settler) resettle(ctx context.Context, tx pgx.Tx, invoice *domain.Invoice, userID string, now time.Time) (domain.Settlement, error) {
	amounts, err := s.paymentRepo.ListActivePaymentAmountsInTx(ctx, tx, invoice.InvoiceID)
	if err != nil {
		return domain.Settlement{}, err
	}
	settlement := domain.ComputeSettlement(invoice.TotalAmount, amounts)
	invoice.ApplySettlement(settlement)
	invoice.Touch(now, userID)

	if err := s.invoiceRepo.UpdateInvoiceInTx(ctx, tx, *invoice); err != nil {
		return domain.Settlement{}, err
	}
	return settlement, nil
}

type invoiceService struct {
	lifecycleService
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	paymentRepo  portsrepo.PaymentWriter
	customerRepo portsrepo.CustomerRepositoryFacade
	settler      settler
}

func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, paymentRepo portsrepo.PaymentWriter, customerRepo portsrepo.CustomerRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		lifecycleService: newLifecycleService(invoiceRepo, domain.EntityInvoice, audit),
		invoiceRepo:      invoiceRepo,
		paymentRepo:      paymentRepo,
		customerRepo:     customerRepo,
		settler:          settler{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo},
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount cannot be negative", apperrors.ErrValidation)
	}
	dueDate, err := dto.ParseDate(req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
	}
	if err := s.checkCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	invoice := domain.Invoice{
		InvoiceID:   uuid.NewString(),
		CustomerID:  req.CustomerID,
		TotalAmount: req.TotalAmount,
		DueDate:     dueDate,
		AuditFields: domain.NewAuditFields(time.Now().UTC(), userID),
	}
	invoice.ApplySettlement(domain.ComputeSettlement(invoice.TotalAmount, nil))

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save invoice", slog.String("invoice_id", invoice.InvoiceID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityInvoice, invoice.InvoiceID, userID)

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("status", string(invoice.Status)))
	return &invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID string, includeDeleted bool) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return visible(invoice, includeDeleted)
}

func (s *invoiceService) ListInvoices(ctx context.Context, customerID *string, opts domain.ListOptions) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx, customerID, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, err
	}
	if invoices == nil {
		return []domain.Invoice{}, nil
	}
	return invoices, nil
}

func (s *invoiceService) GetSettlement(ctx context.Context, invoiceID string) (domain.Settlement, error) {
	invoice, err := s.GetInvoiceByID(ctx, invoiceID, false)
	if err != nil {
		return domain.Settlement{}, err
	}

	var amounts []decimal.Decimal
	err = runInTx(ctx, s.invoiceRepo, func(tx pgx.Tx) error {
		var err error
		amounts, err = s.paymentRepo.ListActivePaymentAmountsInTx(ctx, tx, invoiceID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for settlement", slog.String("invoice_id", invoiceID))
		return domain.Settlement{}, err
	}
	return domain.ComputeSettlement(invoice.TotalAmount, amounts), nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.TotalAmount != nil && req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount cannot be negative", apperrors.ErrValidation)
	}
	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := dto.ParseDate(*req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, *req.DueDate)
		}
		dueDate = &d
	}

	var updated *domain.Invoice
	err := runInTx(ctx, s.invoiceRepo, func(tx pgx.Tx) error {
		invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		if err := requireActive(invoice, domain.EntityInvoice); err != nil {
			return err
		}
		if req.CustomerID != nil && *req.CustomerID != invoice.CustomerID {
			if err := s.checkCustomer(ctx, *req.CustomerID); err != nil {
				return err
			}
			invoice.CustomerID = *req.CustomerID
		}
		setIfPresent(&invoice.TotalAmount, req.TotalAmount)
		setIfPresent(&invoice.DueDate, dueDate)

		if _, err := s.settler.resettle(ctx, tx, invoice, userID, time.Now().UTC()); err != nil {
			return err
		}
		updated = invoice
		return nil
	})
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityInvoice, invoiceID, userID)
	return updated, nil
}

func (s *invoiceService) checkCustomer(ctx context.Context, customerID string) error {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: customer %s does not exist", apperrors.ErrValidation, customerID)
	}
	if err != nil {
		return err
	}
	if customer.IsDeleted() {
		return fmt.Errorf("%w: customer %s is deleted", apperrors.ErrValidation, customerID)
	}
	return nil
}

// paymentService records payments; every change re-settles the invoice under its row lock.
type paymentService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	paymentRepo portsrepo.PaymentRepositoryFacade
	accountRepo portsrepo.AccountReader
	settler     settler
}

func NewPaymentService(invoiceRepo portsrepo.InvoiceRepositoryFacade, paymentRepo portsrepo.PaymentRepositoryFacade, accountRepo portsrepo.AccountReader, audit portsrepo.AuditLogRepository) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: BaseService{AuditRepo: audit},
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		accountRepo: accountRepo,
		settler:     settler{invoiceRepo: invoiceRepo, paymentRepo: paymentRepo},
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}
	paymentDate, err := dto.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid payment date %q", apperrors.ErrValidation, req.PaymentDate)
	}
	if err := s.checkAccount(ctx, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		InvoiceID:     req.InvoiceID,
		Amount:        req.Amount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		AccountID:     req.AccountID,
		AuditFields:   domain.NewAuditFields(now, userID),
	}

	var settlement domain.Settlement
	err = runInTx(ctx, s.invoiceRepo, func(tx pgx.Tx) error {
		invoice, err := s.lockInvoice(ctx, tx, req.InvoiceID)
		if err != nil {
			return err
		}
		if err := requireActive(invoice, domain.EntityInvoice); err != nil {
			return err
		}
		if err := s.paymentRepo.SavePaymentInTx(ctx, tx, payment); err != nil {
			return err
		}
		settlement, err = s.settler.resettle(ctx, tx, invoice, userID, now)
		return err
	})
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to create payment", slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityPayment, payment.PaymentID, userID)

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("invoice_id", payment.InvoiceID),
		slog.String("invoice_status", string(settlement.Status)),
		slog.String("balance_due", settlement.BalanceDue.String()))
	return &payment, nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string, includeDeleted bool) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return visible(payment, includeDeleted)
}

func (s *paymentService) ListPayments(ctx context.Context, invoiceID *string, opts domain.ListOptions) ([]domain.Payment, error) {
	payments, err := s.paymentRepo.ListPayments(ctx, invoiceID, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *paymentService) UpdatePayment(ctx context.Context, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(payment, domain.EntityPayment); err != nil {
		return nil, err
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
		}
		payment.Amount = *req.Amount
	}
	if req.PaymentDate != nil {
		d, err := dto.ParseDate(*req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid payment date %q", apperrors.ErrValidation, *req.PaymentDate)
		}
		payment.PaymentDate = d
	}
	setIfPresent(&payment.PaymentMethod, req.PaymentMethod)
	if req.AccountID != nil {
		if err := s.checkAccount(ctx, req.AccountID); err != nil {
			return nil, err
		}
		accountID := *req.AccountID
		payment.AccountID = &accountID
	}

	now := time.Now().UTC()
	payment.Touch(now, userID)

	err = runInTx(ctx, s.invoiceRepo, func(tx pgx.Tx) error {
		invoice, err := s.lockInvoice(ctx, tx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if err := requireActive(invoice, domain.EntityInvoice); err != nil {
			return err
		}
		// Rejects a payment soft deleted since it was read above.
		if err := s.paymentRepo.UpdatePaymentInTx(ctx, tx, *payment); err != nil {
			return err
		}
		_, err = s.settler.resettle(ctx, tx, invoice, userID, now)
		return err
	})
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to update payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityPayment, paymentID, userID)
	return payment, nil
}

// SoftDelete excludes the payment from its invoice's settlement.
func (s *paymentService) SoftDelete(ctx context.Context, paymentID string, userID string) error {
	return s.changeLifecycle(ctx, paymentID, userID, domain.AuditSoftDelete, func(tx pgx.Tx, _ *domain.Invoice, now time.Time) error {
		return s.paymentRepo.MarkDeletedInTx(ctx, tx, paymentID, now)
	})
}

// Restore counts the payment again. Its invoice must be active.
func (s *paymentService) Restore(ctx context.Context, paymentID string, userID string) error {
	return s.changeLifecycle(ctx, paymentID, userID, domain.AuditRestore, func(tx pgx.Tx, invoice *domain.Invoice, now time.Time) error {
		if err := requireActive(invoice, domain.EntityInvoice); err != nil {
			return err
		}
		return s.paymentRepo.RestoreInTx(ctx, tx, paymentID)
	})
}

func (s *paymentService) Purge(ctx context.Context, paymentID string, userID string) error {
	return s.changeLifecycle(ctx, paymentID, userID, domain.AuditPurge, func(tx pgx.Tx, _ *domain.Invoice, _ time.Time) error {
		return s.paymentRepo.PurgeInTx(ctx, tx, paymentID)
	})
}

// changeLifecycle runs change under the invoice lock and re-settles the invoice afterwards.
func (s *paymentService) changeLifecycle(ctx context.Context, paymentID, userID string, action domain.AuditAction, change func(tx pgx.Tx, invoice *domain.Invoice, now time.Time) error) error {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = runInTx(ctx, s.invoiceRepo, func(tx pgx.Tx) error {
		invoice, err := s.lockInvoice(ctx, tx, payment.InvoiceID)
		if err != nil {
			return err
		}
		if err := change(tx, invoice, now); err != nil {
			return err
		}
		_, err = s.settler.resettle(ctx, tx, invoice, userID, now)
		return err
	})
	if err != nil {
		s.LogUnexpected(ctx, err, "Payment lifecycle change failed",
			slog.String("action", string(action)),
			slog.String("payment_id", paymentID))
		return err
	}
	s.RecordAudit(ctx, action, domain.EntityPayment, paymentID, userID)
	return nil
}

// lockInvoice reports a missing invoice as a validation error of the payment.
func (s *paymentService) lockInvoice(ctx context.Context, tx pgx.Tx, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByIDForUpdate(ctx, tx, invoiceID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: invoice %s does not exist", apperrors.ErrValidation, invoiceID)
	}
	return invoice, err
}

func (s *paymentService) checkAccount(ctx context.Context, accountID *string) error {
	if accountID == nil {
		return nil
	}
	account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, *accountID)
	}
	if err != nil {
		return err
	}
	if account.IsDeleted() {
		return fmt.Errorf("%w: account %s is deleted", apperrors.ErrValidation, *accountID)
	}
	return nil
}
