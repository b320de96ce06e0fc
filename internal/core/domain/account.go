package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a cash account.
type AccountType string

const (
	AccountSavings  AccountType = "savings"
	AccountChecking AccountType = "checking"
)

// Account is a cash account whose balance is moved by transfers.
type Account struct {
	AccountID   string          `json:"accountID" db:"account_id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	AccountType AccountType     `json:"accountType" db:"account_type"`
	Balance     decimal.Decimal `json:"balance" db:"balance"`
	AuditFields
	SoftDeleteFields
}

// Transfer moves money between two accounts. While ACTIVE its amount is reflected in both balances.
type Transfer struct {
	TransferID    string          `json:"transferID" db:"transfer_id"`
	FromAccountID string          `json:"fromAccountID" db:"from_account_id"`
	ToAccountID   string          `json:"toAccountID" db:"to_account_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Description   string          `json:"description" db:"description"`
	AuditFields
	SoftDeleteFields
}

// BalanceChanges returns the per-account deltas for applying (sign=1) or reversing (sign=-1) the transfer.
func (t Transfer) BalanceChanges(sign int64) map[string]decimal.Decimal {
	amt := t.Amount.Mul(decimal.NewFromInt(sign))
	return map[string]decimal.Decimal{
		t.FromAccountID: amt.Neg(),
		t.ToAccountID:   amt,
	}
}
