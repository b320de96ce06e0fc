package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/core/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var assertAnError = assert.AnError

const (
	accountA = "11111111-1111-1111-1111-111111111111"
	accountB = "22222222-2222-2222-2222-222222222222"
)

type TransferServiceTestSuite struct {
	suite.Suite
	transferRepo *MockTransferRepository
	accountRepo  *MockAccountRepository
	service      portssvc.TransferSvcFacade
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.transferRepo = new(MockTransferRepository)
	suite.accountRepo = new(MockAccountRepository)
	suite.service = services.NewTransferService(suite.transferRepo, suite.accountRepo, newAuditMock())
}

func (suite *TransferServiceTestSuite) lockAccounts(balanceA, balanceB string) {
	suite.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, []string{accountA, accountB}).
		Return(map[string]domain.Account{
			accountA: {AccountID: accountA, Balance: decimal.RequireFromString(balanceA)},
			accountB: {AccountID: accountB, Balance: decimal.RequireFromString(balanceB)},
		}, nil).Once()
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_MovesBalances() {
	expectTx(&suite.transferRepo.Mock)
	// Locks are always taken in id order, regardless of direction.
	suite.lockAccounts("10.00", "100.00")
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ch map[string]decimal.Decimal) bool {
		return ch[accountB].Equal(decimal.RequireFromString("-25")) && ch[accountA].Equal(decimal.RequireFromString("25"))
	}), "u", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.transferRepo.On("SaveTransferInTx", mock.Anything, mock.Anything, mock.AnythingOfType("domain.Transfer")).Return(nil).Once()

	transfer, err := suite.service.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromAccountID: accountB,
		ToAccountID:   accountA,
		Amount:        decimal.RequireFromString("25"),
	}, "u")

	suite.Require().NoError(err)
	suite.NotEmpty(transfer.TransferID)
	suite.transferRepo.AssertCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_InsufficientFunds() {
	expectTx(&suite.transferRepo.Mock)
	suite.lockAccounts("10.00", "0")

	_, err := suite.service.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromAccountID: accountA,
		ToAccountID:   accountB,
		Amount:        decimal.RequireFromString("10.01"),
	}, "u")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "insufficient funds")
	suite.transferRepo.AssertNotCalled(suite.T(), "SaveTransferInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.transferRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_SameAccountRejected() {
	_, err := suite.service.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromAccountID: accountA,
		ToAccountID:   accountA,
		Amount:        decimal.NewFromInt(1),
	}, "u")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_MissingAccountIsValidationError() {
	expectTx(&suite.transferRepo.Mock)
	suite.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromAccountID: accountA,
		ToAccountID:   accountB,
		Amount:        decimal.NewFromInt(1),
	}, "u")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_DeletedAccountRejected() {
	expectTx(&suite.transferRepo.Mock)
	deletedAt := time.Now()
	suite.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything).
		Return(map[string]domain.Account{
			accountA: {AccountID: accountA, Balance: decimal.NewFromInt(100)},
			accountB: {AccountID: accountB, SoftDeleteFields: domain.SoftDeleteFields{DeletedAt: &deletedAt}},
		}, nil).Once()

	_, err := suite.service.CreateTransfer(context.Background(), dto.CreateTransferRequest{
		FromAccountID: accountA,
		ToAccountID:   accountB,
		Amount:        decimal.NewFromInt(1),
	}, "u")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestSoftDelete_ReversesMovement() {
	transfer := &domain.Transfer{TransferID: "t1", FromAccountID: accountA, ToAccountID: accountB, Amount: decimal.NewFromInt(30)}
	expectTx(&suite.transferRepo.Mock)
	suite.transferRepo.On("FindTransferByID", mock.Anything, "t1").Return(transfer, nil).Once()
	suite.transferRepo.On("MarkDeletedInTx", mock.Anything, mock.Anything, "t1", mock.Anything).Return(nil).Once()
	suite.lockAccounts("70", "30")
	suite.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.MatchedBy(func(ch map[string]decimal.Decimal) bool {
		return ch[accountA].Equal(decimal.NewFromInt(30)) && ch[accountB].Equal(decimal.NewFromInt(-30))
	}), "u", mock.Anything).Return(nil).Once()

	suite.Require().NoError(suite.service.SoftDelete(context.Background(), "t1", "u"))
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestSoftDelete_DestinationAlreadySpent() {
	transfer := &domain.Transfer{TransferID: "t1", FromAccountID: accountA, ToAccountID: accountB, Amount: decimal.NewFromInt(30)}
	expectTx(&suite.transferRepo.Mock)
	suite.transferRepo.On("FindTransferByID", mock.Anything, "t1").Return(transfer, nil).Once()
	suite.transferRepo.On("MarkDeletedInTx", mock.Anything, mock.Anything, "t1", mock.Anything).Return(nil).Once()
	suite.lockAccounts("70", "5")

	err := suite.service.SoftDelete(context.Background(), "t1", "u")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.transferRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestPurge_DeletedTransferSkipsReversal() {
	deletedAt := time.Now()
	transfer := &domain.Transfer{TransferID: "t1", FromAccountID: accountA, ToAccountID: accountB, Amount: decimal.NewFromInt(30),
		SoftDeleteFields: domain.SoftDeleteFields{DeletedAt: &deletedAt}}
	expectTx(&suite.transferRepo.Mock)
	suite.transferRepo.On("FindTransferByID", mock.Anything, "t1").Return(transfer, nil).Once()
	suite.transferRepo.On("PurgeInTx", mock.Anything, mock.Anything, "t1").Return(nil).Once()

	suite.Require().NoError(suite.service.Purge(context.Background(), "t1", "admin"))
	suite.accountRepo.AssertNotCalled(suite.T(), "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestUpdateTransfer_OnlyDescription() {
	transfer := &domain.Transfer{TransferID: "t1", FromAccountID: accountA, ToAccountID: accountB, Amount: decimal.NewFromInt(30)}
	desc := "rent"
	suite.transferRepo.On("FindTransferByID", mock.Anything, "t1").Return(transfer, nil).Once()
	suite.transferRepo.On("UpdateTransfer", mock.Anything, mock.MatchedBy(func(t domain.Transfer) bool {
		return t.Description == desc && t.Amount.Equal(decimal.NewFromInt(30))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransfer(context.Background(), "t1", dto.UpdateTransferRequest{Description: &desc}, "u")

	suite.Require().NoError(err)
	suite.Equal(desc, updated.Description)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
