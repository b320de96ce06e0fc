package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account regardless of its lifecycle state.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, opts domain.ListOptions) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates name and description. Balance is only moved by transfers.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx adds the given deltas to the account balances within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
	LifecycleManager
	TransactionManager
}

// TransferReader defines read operations for transfers
type TransferReader interface {
	FindTransferByID(ctx context.Context, transferID string) (*domain.Transfer, error)
	ListTransfers(ctx context.Context, opts domain.ListOptions) ([]domain.Transfer, error)
}

// TransferWriter defines write operations for transfers.
type TransferWriter interface {
	SaveTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.Transfer) error

	// UpdateTransfer updates the description only; amount and accounts are fixed once booked.
	UpdateTransfer(ctx context.Context, transfer domain.Transfer) error
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
	TxLifecycleManager
	TransactionManager
}
