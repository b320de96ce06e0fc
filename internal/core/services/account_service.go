package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
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

type accountService struct {
	lifecycleService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, audit portsrepo.AuditLogRepository) portssvc.AccountSvcFacade {
	return &accountService{
		lifecycleService: newLifecycleService(repo, domain.EntityAccount, audit),
		accountRepo:      repo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AccountType: req.AccountType,
		Balance:     req.Balance,
		AuditFields: domain.NewAuditFields(now, userID),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogUnexpected(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityAccount, account.AccountID, userID)

	s.LogInfo(ctx, "Account created successfully", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string, includeDeleted bool) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return visible(account, includeDeleted)
}

func (s *accountService) ListAccounts(ctx context.Context, opts domain.ListOptions) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", opts.Limit), slog.Int("offset", opts.Offset))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(account, domain.EntityAccount); err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.Touch(time.Now().UTC(), userID)

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityAccount, accountID, userID)
	return account, nil
}

// transferService books transfers and keeps both account balances in step with the active transfers.
type transferService struct {
	BaseService
	transferRepo portsrepo.TransferRepositoryFacade
	accountRepo  portsrepo.AccountTransactionSupport
}

// NewTransferService creates a new transfer service.
func NewTransferService(transferRepo portsrepo.TransferRepositoryFacade, accountRepo portsrepo.AccountTransactionSupport, audit portsrepo.AuditLogRepository) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService:  BaseService{AuditRepo: audit},
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) CreateTransfer(ctx context.Context, req dto.CreateTransferRequest, userID string) (*domain.Transfer, error) {
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: source and destination account must differ", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	transfer := domain.Transfer{
		TransferID:    uuid.NewString(),
		FromAccountID: req.FromAccountID,
		ToAccountID:   req.ToAccountID,
		Amount:        req.Amount,
		Description:   req.Description,
		AuditFields:   domain.NewAuditFields(now, userID),
	}

	err := runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		if err := s.applyBalances(ctx, tx, transfer, 1, userID, now); err != nil {
			return err
		}
		return s.transferRepo.SaveTransferInTx(ctx, tx, transfer)
	})
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to create transfer",
			slog.String("from_account_id", req.FromAccountID),
			slog.String("to_account_id", req.ToAccountID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditCreate, domain.EntityTransfer, transfer.TransferID, userID)

	s.LogInfo(ctx, "Transfer created successfully",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("amount", transfer.Amount.String()))
	return &transfer, nil
}

func (s *transferService) GetTransferByID(ctx context.Context, transferID string, includeDeleted bool) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		s.LogUnexpected(ctx, err, "Failed to find transfer by ID", slog.String("transfer_id", transferID))
		return nil, err
	}
	return visible(transfer, includeDeleted)
}

func (s *transferService) ListTransfers(ctx context.Context, opts domain.ListOptions) ([]domain.Transfer, error) {
	transfers, err := s.transferRepo.ListTransfers(ctx, opts)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transfers")
		return nil, err
	}
	if transfers == nil {
		return []domain.Transfer{}, nil
	}
	return transfers, nil
}

func (s *transferService) UpdateTransfer(ctx context.Context, transferID string, req dto.UpdateTransferRequest, userID string) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
	if err != nil {
		return nil, err
	}
	if err := requireActive(transfer, domain.EntityTransfer); err != nil {
		return nil, err
	}

	if req.Description != nil {
		transfer.Description = *req.Description
	}
	transfer.Touch(time.Now().UTC(), userID)

	if err := s.transferRepo.UpdateTransfer(ctx, *transfer); err != nil {
		s.LogUnexpected(ctx, err, "Failed to update transfer", slog.String("transfer_id", transferID))
		return nil, err
	}
	s.RecordAudit(ctx, domain.AuditUpdate, domain.EntityTransfer, transferID, userID)
	return transfer, nil
}

// SoftDelete marks the transfer deleted and moves the money back.
func (s *transferService) SoftDelete(ctx context.Context, transferID string, userID string) error {
	now := time.Now().UTC()
	err := runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
		if err != nil {
			return err
		}
		if err := s.transferRepo.MarkDeletedInTx(ctx, tx, transferID, now); err != nil {
			return err
		}
		return s.applyBalances(ctx, tx, *transfer, -1, userID, now)
	})
	return s.finishLifecycle(ctx, err, domain.AuditSoftDelete, transferID, userID)
}

// Restore un-deletes the transfer and books it again.
func (s *transferService) Restore(ctx context.Context, transferID string, userID string) error {
	now := time.Now().UTC()
	err := runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
		if err != nil {
			return err
		}
		if err := s.transferRepo.RestoreInTx(ctx, tx, transferID); err != nil {
			return err
		}
		return s.applyBalances(ctx, tx, *transfer, 1, userID, now)
	})
	return s.finishLifecycle(ctx, err, domain.AuditRestore, transferID, userID)
}

// Purge removes the transfer. An active transfer is reversed first.
func (s *transferService) Purge(ctx context.Context, transferID string, userID string) error {
	now := time.Now().UTC()
	err := runInTx(ctx, s.transferRepo, func(tx pgx.Tx) error {
		transfer, err := s.transferRepo.FindTransferByID(ctx, transferID)
		if err != nil {
			return err
		}
		if !transfer.IsDeleted() {
			if err := s.transferRepo.MarkDeletedInTx(ctx, tx, transferID, now); err != nil {
				return err
			}
			if err := s.applyBalances(ctx, tx, *transfer, -1, userID, now); err != nil {
				return err
			}
		}
		return s.transferRepo.PurgeInTx(ctx, tx, transferID)
	})
	return s.finishLifecycle(ctx, err, domain.AuditPurge, transferID, userID)
}

func (s *transferService) finishLifecycle(ctx context.Context, err error, action domain.AuditAction, transferID, userID string) error {
	if err != nil {
		s.LogUnexpected(ctx, err, "Transfer lifecycle change failed",
			slog.String("action", string(action)),
			slog.String("transfer_id", transferID))
		return err
	}
	s.RecordAudit(ctx, action, domain.EntityTransfer, transferID, userID)
	return nil
}

// applyBalances locks both accounts (in id order) and books sign*amount from the source to the destination.
// Both accounts must be active and no balance may go negative.
func (s *transferService) applyBalances(ctx context.Context, tx pgx.Tx, t domain.Transfer, sign int64, userID string, now time.Time) error {
	ids := []string{t.FromAccountID, t.ToAccountID}
	sort.Strings(ids)

	accounts, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: referenced account does not exist", apperrors.ErrValidation)
	}
	if err != nil {
		return err
	}

	changes := t.BalanceChanges(sign)
	for _, id := range ids {
		acc := accounts[id]
		if acc.IsDeleted() {
			return fmt.Errorf("%w: account %s is deleted", apperrors.ErrValidation, id)
		}
		if acc.Balance.Add(changes[id]).LessThan(decimal.Zero) {
			return fmt.Errorf("%w: insufficient funds in account %s", apperrors.ErrValidation, id)
		}
	}

	return s.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, userID, now)
}
