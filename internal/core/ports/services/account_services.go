package services

import (
	"context"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account. Deleted accounts are only returned when includeDeleted is set.
	GetAccountByID(ctx context.Context, accountID string, includeDeleted bool) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, opts domain.ListOptions) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	LifecycleSvc
}

// TransferSvcFacade moves money between accounts. Its lifecycle operations also move the balances:
// soft delete and purge of an active transfer reverse it, restore applies it again.
type TransferSvcFacade interface {
	CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transfer, error)
	GetTransferByID(ctx context.Context, transferID string, includeDeleted bool) (*domain.Transfer, error)
	ListTransfers(ctx context.Context, opts domain.ListOptions) ([]domain.Transfer, error)
	UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.Transfer, error)
	LifecycleSvc
}
