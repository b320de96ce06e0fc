package domain

import "github.com/shopspring/decimal"

// InvoiceStatus is derived from the invoice total and its active payments; clients never set it.
type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "UNPAID"
	InvoicePartiallyPaid InvoiceStatus = "PARTIALLY_PAID"
	InvoicePaid          InvoiceStatus = "PAID"
	// InvoiceOverpaid means active payments exceed the total; BalanceDue is negative.
	InvoiceOverpaid InvoiceStatus = "OVERPAID"
)

// Settlement is the outcome of matching an invoice total against its active payments.
type Settlement struct {
	Total        decimal.Decimal `json:"totalAmount"`
	Paid         decimal.Decimal `json:"paidAmount"`
	BalanceDue   decimal.Decimal `json:"balanceDue"`
	Status       InvoiceStatus   `json:"status"`
	PaymentCount int             `json:"paymentCount"`
}

// ComputeSettlement returns the balance due and status for an invoice total and the amounts
// of its non-deleted payments.
func ComputeSettlement(total decimal.Decimal, activePaymentAmounts []decimal.Decimal) Settlement {
	paid := decimal.Zero
	for _, amt := range activePaymentAmounts {
		paid = paid.Add(amt)
	}
	balance := total.Sub(paid)

	var status InvoiceStatus
	switch {
	case balance.IsNegative():
		status = InvoiceOverpaid
	case balance.IsZero():
		status = InvoicePaid
	case balance.LessThan(total):
		status = InvoicePartiallyPaid
	default:
		status = InvoiceUnpaid
	}

	return Settlement{
		Total:        total,
		Paid:         paid,
		BalanceDue:   balance,
		Status:       status,
		PaymentCount: len(activePaymentAmounts),
	}
}
