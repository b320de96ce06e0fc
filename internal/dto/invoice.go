package dto

import (
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest raises an invoice. Status and balance due are derived and cannot be sent.
type CreateInvoiceRequest struct {
	CustomerID  string          `json:"customerID" binding:"required,uuid"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"decimalgte0" swaggertype:"string" example:"100.00"`
	DueDate     string          `json:"dueDate" binding:"required,datetime=2006-01-02" example:"2024-12-31"`
}

type UpdateInvoiceRequest struct {
	CustomerID  *string          `json:"customerID" binding:"omitempty,uuid"`
	TotalAmount *decimal.Decimal `json:"totalAmount" binding:"omitempty,decimalgte0" swaggertype:"string"`
	DueDate     *string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
}

type ListInvoicesParams struct {
	ListParams
	CustomerID *string `form:"customer_id" binding:"omitempty,uuid"`
}

type InvoiceResponse struct {
	InvoiceID   string               `json:"invoiceID"`
	CustomerID  string               `json:"customerID"`
	TotalAmount decimal.Decimal      `json:"totalAmount" swaggertype:"string"`
	DueDate     string               `json:"dueDate"`
	Status      domain.InvoiceStatus `json:"status"`
	BalanceDue  decimal.Decimal      `json:"balanceDue" swaggertype:"string"`
	RecordMeta
}

func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:   inv.InvoiceID,
		CustomerID:  inv.CustomerID,
		TotalAmount: inv.TotalAmount,
		DueDate:     inv.DueDate.Format(DateLayout),
		Status:      inv.Status,
		BalanceDue:  inv.BalanceDue,
		RecordMeta:  toRecordMeta(inv.AuditFields, inv.SoftDeleteFields),
	}
}

type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

func ToListInvoiceResponse(invoices []domain.Invoice) ListInvoicesResponse {
	return ListInvoicesResponse{Invoices: mapList(invoices, ToInvoiceResponse)}
}

// SettlementResponse reports how far an invoice has been paid.
type SettlementResponse struct {
	InvoiceID    string               `json:"invoiceID"`
	TotalAmount  decimal.Decimal      `json:"totalAmount" swaggertype:"string"`
	PaidAmount   decimal.Decimal      `json:"paidAmount" swaggertype:"string"`
	BalanceDue   decimal.Decimal      `json:"balanceDue" swaggertype:"string"`
	Status       domain.InvoiceStatus `json:"status"`
	PaymentCount int                  `json:"paymentCount"`
}

func ToSettlementResponse(invoiceID string, s domain.Settlement) SettlementResponse {
	return SettlementResponse{
		InvoiceID:    invoiceID,
		TotalAmount:  s.Total,
		PaidAmount:   s.Paid,
		BalanceDue:   s.BalanceDue,
		Status:       s.Status,
		PaymentCount: s.PaymentCount,
	}
}

type CreatePaymentRequest struct {
	InvoiceID     string               `json:"invoiceID" binding:"required,uuid"`
	Amount        decimal.Decimal      `json:"amount" binding:"decimalgt0" swaggertype:"string" example:"40.00"`
	PaymentDate   string               `json:"paymentDate" binding:"required,datetime=2006-01-02" example:"2024-06-01"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash bank credit"`
	AccountID     *string              `json:"accountID" binding:"omitempty,uuid"`
}

// UpdatePaymentRequest cannot move a payment to another invoice.
type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal      `json:"amount" binding:"omitempty,decimalgt0" swaggertype:"string"`
	PaymentDate   *string               `json:"paymentDate" binding:"omitempty,datetime=2006-01-02"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash bank credit"`
	AccountID     *string               `json:"accountID" binding:"omitempty,uuid"`
}

type ListPaymentsParams struct {
	ListParams
	InvoiceID *string `form:"invoice_id" binding:"omitempty,uuid"`
}

type PaymentResponse struct {
	PaymentID     string               `json:"paymentID"`
	InvoiceID     string               `json:"invoiceID"`
	Amount        decimal.Decimal      `json:"amount" swaggertype:"string"`
	PaymentDate   string               `json:"paymentDate"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	AccountID     *string              `json:"accountID,omitempty"`
	RecordMeta
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate.Format(DateLayout),
		PaymentMethod: p.PaymentMethod,
		AccountID:     p.AccountID,
		RecordMeta:    toRecordMeta(p.AuditFields, p.SoftDeleteFields),
	}
}

type ListPaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

func ToListPaymentResponse(payments []domain.Payment) ListPaymentsResponse {
	return ListPaymentsResponse{Payments: mapList(payments, ToPaymentResponse)}
}

// ParseDate parses a calendar date in DateLayout as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
