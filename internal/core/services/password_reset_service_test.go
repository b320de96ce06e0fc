package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/core/services"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PasswordResetServiceTestSuite struct {
	suite.Suite
	userRepo  *MockUserRepository
	resetRepo *MockResetTokenRepository
	mailer    *MockMailer
	service   portssvc.PasswordResetSvcFacade
}

func (suite *PasswordResetServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.resetRepo = new(MockResetTokenRepository)
	suite.mailer = new(MockMailer)
	cfg := &config.Config{FrontendBaseURL: "https://app.example.com", ResetTokenExpiryDuration: time.Hour}
	suite.service = services.NewPasswordResetService(cfg, suite.userRepo, suite.resetRepo, suite.mailer)
}

func (suite *PasswordResetServiceTestSuite) TestRequestReset_MailsLinkWithRawToken() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil).Once()

	var saved domain.PasswordResetToken
	suite.resetRepo.On("SaveResetToken", ctx, mock.AnythingOfType("domain.PasswordResetToken")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.PasswordResetToken) }).Return(nil).Once()

	var body string
	suite.mailer.On("Send", ctx, "alice@example.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { body = args.String(3) }).Return(nil).Once()

	suite.Require().NoError(suite.service.RequestReset(ctx, "alice@example.com"))

	const prefix = "https://app.example.com/reset-password/"
	idx := strings.Index(body, prefix)
	suite.Require().GreaterOrEqual(idx, 0, "mail body should contain the reset link")
	raw := strings.Fields(body[idx+len(prefix):])[0]
	suite.Equal(utils.HashOpaqueToken(raw), saved.TokenHash)
	suite.Equal("u1", saved.UserID)
	suite.WithinDuration(time.Now().Add(time.Hour), saved.ExpiresAt, 5*time.Second)
}

func (suite *PasswordResetServiceTestSuite) TestRequestReset_UnknownEmailIsSilent() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	suite.NoError(suite.service.RequestReset(ctx, "nobody@example.com"))
	suite.mailer.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestRequestReset_MailFailureNotReported() {
	ctx := context.Background()
	suite.userRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(&domain.User{UserID: "u1", Email: "alice@example.com"}, nil).Once()
	suite.resetRepo.On("SaveResetToken", ctx, mock.Anything).Return(nil).Once()
	suite.mailer.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(assertAnError).Once()

	suite.NoError(suite.service.RequestReset(ctx, "alice@example.com"))
}

func (suite *PasswordResetServiceTestSuite) usableToken(raw string) string {
	hash := utils.HashOpaqueToken(raw)
	suite.resetRepo.On("FindResetToken", mock.Anything, hash).
		Return(&domain.PasswordResetToken{TokenHash: hash, UserID: "u1", ExpiresAt: time.Now().Add(time.Minute)}, nil).Once()
	return hash
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_Success() {
	ctx := context.Background()
	hash := suite.usableToken("tok")
	expectTx(&suite.userRepo.Mock)
	suite.resetRepo.On("MarkResetTokenUsedInTx", ctx, mock.Anything, hash, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.userRepo.On("UpdatePasswordInTx", ctx, mock.Anything, "u1", mock.MatchedBy(func(h string) bool {
		return utils.CheckPasswordHash(strongPassword, h)
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.service.ResetPassword(ctx, "tok", strongPassword))
	suite.userRepo.AssertCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.userRepo.AssertNotCalled(suite.T(), "ClearRefreshToken", mock.Anything, mock.Anything)
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_FailedUpdateKeepsTokenUsable() {
	ctx := context.Background()
	hash := suite.usableToken("tok")
	expectTx(&suite.userRepo.Mock)
	suite.resetRepo.On("MarkResetTokenUsedInTx", ctx, mock.Anything, hash, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.userRepo.On("UpdatePasswordInTx", ctx, mock.Anything, "u1", mock.Anything, mock.Anything).
		Return(assertAnError).Once()

	err := suite.service.ResetPassword(ctx, "tok", strongPassword)

	suite.ErrorIs(err, assertAnError)
	suite.userRepo.AssertCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	suite.userRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)

	// Nothing was committed, so the same token goes through on the next attempt.
	suite.usableToken("tok")
	expectTx(&suite.userRepo.Mock)
	suite.resetRepo.On("MarkResetTokenUsedInTx", ctx, mock.Anything, hash, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.userRepo.On("UpdatePasswordInTx", ctx, mock.Anything, "u1", mock.Anything, mock.Anything).Return(nil).Once()

	suite.NoError(suite.service.ResetPassword(ctx, "tok", strongPassword))
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_TokenUsedConcurrently() {
	ctx := context.Background()
	hash := suite.usableToken("tok")
	expectTx(&suite.userRepo.Mock)
	suite.resetRepo.On("MarkResetTokenUsedInTx", ctx, mock.Anything, hash, mock.Anything).
		Return(apperrors.ErrInvalidState).Once()

	err := suite.service.ResetPassword(ctx, "tok", strongPassword)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.userRepo.AssertNotCalled(suite.T(), "UpdatePasswordInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_UnusableTokens() {
	ctx := context.Background()
	used := time.Now()
	expiredHash := utils.HashOpaqueToken("expired")
	usedHash := utils.HashOpaqueToken("used")
	suite.resetRepo.On("FindResetToken", ctx, expiredHash).
		Return(&domain.PasswordResetToken{TokenHash: expiredHash, ExpiresAt: time.Now().Add(-time.Minute)}, nil)
	suite.resetRepo.On("FindResetToken", ctx, usedHash).
		Return(&domain.PasswordResetToken{TokenHash: usedHash, ExpiresAt: time.Now().Add(time.Hour), UsedAt: &used}, nil)
	suite.resetRepo.On("FindResetToken", ctx, utils.HashOpaqueToken("unknown")).Return(nil, apperrors.ErrNotFound)

	for _, tok := range []string{"expired", "used", "unknown", ""} {
		suite.ErrorIs(suite.service.ValidateResetToken(ctx, tok), apperrors.ErrValidation, tok)
		suite.ErrorIs(suite.service.ResetPassword(ctx, tok, strongPassword), apperrors.ErrValidation, tok)
	}
	suite.userRepo.AssertNotCalled(suite.T(), "UpdatePasswordInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestResetPassword_WeakPasswordCheckedFirst() {
	err := suite.service.ResetPassword(context.Background(), "tok", "weak")
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.resetRepo.AssertNotCalled(suite.T(), "FindResetToken", mock.Anything, mock.Anything)
}

func (suite *PasswordResetServiceTestSuite) TestDeleteOldResetTokens() {
	ctx := context.Background()
	suite.resetRepo.On("DeleteResetTokensCreatedBefore", ctx, mock.MatchedBy(func(before time.Time) bool {
		return before.Before(time.Now().Add(-29 * 24 * time.Hour))
	})).Return(int64(3), nil).Once()

	n, err := suite.service.DeleteOldResetTokens(ctx, 30*24*time.Hour)

	suite.Require().NoError(err)
	suite.Equal(int64(3), n)
}

func TestPasswordResetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PasswordResetServiceTestSuite))
}
