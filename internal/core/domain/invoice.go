package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a receivable raised against a customer.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID" db:"invoice_id"`
	CustomerID  string          `json:"customerID" db:"customer_id"`
	TotalAmount decimal.Decimal `json:"totalAmount" db:"total_amount"`
	DueDate     time.Time       `json:"dueDate" db:"due_date"`
	Status      InvoiceStatus   `json:"status" db:"status"`
	BalanceDue  decimal.Decimal `json:"balanceDue" db:"balance_due"`
	AuditFields
	SoftDeleteFields
}

// ApplySettlement copies the derived fields of s onto the invoice.
func (i *Invoice) ApplySettlement(s Settlement) {
	i.Status = s.Status
	i.BalanceDue = s.BalanceDue
}

// PaymentMethod classifies how a payment was made.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentBank   PaymentMethod = "bank"
	PaymentCredit PaymentMethod = "credit"
)

// Payment settles (part of) an invoice.
type Payment struct {
	PaymentID     string          `json:"paymentID" db:"payment_id"`
	InvoiceID     string          `json:"invoiceID" db:"invoice_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	PaymentDate   time.Time       `json:"paymentDate" db:"payment_date"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	AccountID     *string         `json:"accountID,omitempty" db:"account_id"`
	AuditFields
	SoftDeleteFields
}

// ActiveAmounts extracts the amounts of the payments that are not soft deleted.
func ActiveAmounts(payments []Payment) []decimal.Decimal {
	active := FilterActive(payments)
	amounts := make([]decimal.Decimal, len(active))
	for i, p := range active {
		amounts[i] = p.Amount
	}
	return amounts
}
