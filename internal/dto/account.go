package dto

import (
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name        string             `json:"name" binding:"required,max=100"`
	Description string             `json:"description" binding:"max=255"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=savings checking"`
	// Opening balance. Afterwards the balance only changes through transfers.
	Balance decimal.Decimal `json:"balance" binding:"decimalgte0" swaggertype:"string" example:"0.00"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=255"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string             `json:"accountID"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance" swaggertype:"string"`
	RecordMeta
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   acc.AccountID,
		Name:        acc.Name,
		Description: acc.Description,
		AccountType: acc.AccountType,
		Balance:     acc.Balance,
		RecordMeta:  toRecordMeta(acc.AuditFields, acc.SoftDeleteFields),
	}
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	return ListAccountsResponse{Accounts: mapList(accounts, ToAccountResponse)}
}

// CreateTransferRequest moves money between two accounts.
type CreateTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required,uuid"`
	ToAccountID   string          `json:"toAccountID" binding:"required,uuid,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount" binding:"decimalgt0" swaggertype:"string" example:"25.00"`
	Description   string          `json:"description" binding:"max=255"`
}

// UpdateTransferRequest only allows the description to change; amount and accounts are fixed once booked.
type UpdateTransferRequest struct {
	Description *string `json:"description" binding:"omitempty,max=255"`
}

type TransferResponse struct {
	TransferID    string          `json:"transferID"`
	FromAccountID string          `json:"fromAccountID"`
	ToAccountID   string          `json:"toAccountID"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	Description   string          `json:"description"`
	RecordMeta
}

func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:    t.TransferID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Description:   t.Description,
		RecordMeta:    toRecordMeta(t.AuditFields, t.SoftDeleteFields),
	}
}

type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
}

func ToListTransferResponse(transfers []domain.Transfer) ListTransfersResponse {
	return ListTransfersResponse{Transfers: mapList(transfers, ToTransferResponse)}
}
