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
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const strongPassword = "Str0ng!pass"

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, newAuditMock())
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: strongPassword, Name: "Alice"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "alice@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "alice" && u.Role == domain.RoleUser && u.PasswordHash != strongPassword && u.CreatedBy == u.UserID
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleUser, user.Role)
	suite.True(utils.CheckPasswordHash(strongPassword, user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_WeakPassword() {
	_, err := suite.service.RegisterUser(context.Background(), dto.RegisterRequest{Username: "bob", Email: "b@example.com", Password: "short"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "at least 8 characters")
	suite.Contains(err.Error(), "special character")
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateUsername() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&domain.User{UserID: "x"}, nil).Once()

	_, err := suite.service.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Email: "a@example.com", Password: strongPassword})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword(strongPassword)
	suite.Require().NoError(err)
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&domain.User{UserID: "u1", PasswordHash: hash}, nil)
	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "alice", strongPassword)
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "alice", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "ghost", strongPassword)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestSetRole() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "alice").Return(&domain.User{UserID: "u1", Role: domain.RoleUser}, nil).Once()
	suite.mockUserRepo.On("UpdateRole", ctx, "u1", domain.RoleAdmin, "root", mock.AnythingOfType("time.Time")).Return(nil).Once()

	user, err := suite.service.SetRole(ctx, "alice", domain.RoleAdmin, "root")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, user.Role)

	_, err = suite.service.SetRole(ctx, "alice", domain.Role("superuser"), "root")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

type TokenServiceTestSuite struct {
	suite.Suite
	userRepo    *MockUserRepository
	revokedRepo *MockRevokedTokenRepository
	service     portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.revokedRepo = new(MockRevokedTokenRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(cfg, suite.userRepo, suite.revokedRepo)
}

func (suite *TokenServiceTestSuite) TestAccessTokenCarriesRole() {
	issued, err := suite.service.GenerateAccessToken(context.Background(), &domain.User{UserID: "u1", Username: "alice", Role: domain.RoleManager})
	suite.Require().NoError(err)

	claims, err := utils.ParseAndValidateJWT(issued.Token, "test-secret")
	suite.Require().NoError(err)
	suite.Equal("u1", claims.Subject)
	suite.Equal(string(domain.RoleManager), claims.Role)
	suite.Equal(issued.JTI, claims.ID)
}

func (suite *TokenServiceTestSuite) TestRefreshTokenRoundTrip() {
	ctx := context.Background()
	var storedHash string
	var storedExpiry time.Time
	suite.userRepo.On("UpdateRefreshToken", ctx, "u1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil).Once()

	raw, expiry, err := suite.service.GenerateRefreshToken(ctx, &domain.User{UserID: "u1"})
	suite.Require().NoError(err)
	suite.NotEqual(raw, storedHash)
	suite.Equal(expiry, storedExpiry)

	suite.userRepo.On("FindUserByRefreshTokenHash", ctx, storedHash).
		Return(&domain.User{UserID: "u1", RefreshTokenHash: &storedHash, RefreshTokenExpiryTime: &storedExpiry}, nil).Once()

	user, err := suite.service.ValidateAndParseRefreshToken(ctx, raw)
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)
}

func (suite *TokenServiceTestSuite) TestRefreshToken_Rejections() {
	ctx := context.Background()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, "")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	suite.userRepo.On("FindUserByRefreshTokenHash", ctx, utils.HashOpaqueToken("unknown")).Return(nil, apperrors.ErrNotFound).Once()
	_, err = suite.service.ValidateAndParseRefreshToken(ctx, "unknown")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	hash := utils.HashOpaqueToken("stale")
	past := time.Now().Add(-time.Minute)
	suite.userRepo.On("FindUserByRefreshTokenHash", ctx, hash).
		Return(&domain.User{UserID: "u1", RefreshTokenHash: &hash, RefreshTokenExpiryTime: &past}, nil).Once()
	_, err = suite.service.ValidateAndParseRefreshToken(ctx, "stale")
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestRevokeAccessToken() {
	ctx := context.Background()
	jti := uuid.NewString()
	exp := time.Now().Add(time.Hour)
	suite.revokedRepo.On("RevokeToken", ctx, mock.MatchedBy(func(t domain.RevokedToken) bool {
		return t.JTI == jti && t.UserID == "u1" && t.ExpiresAt.Equal(exp)
	})).Return(nil).Once()
	suite.revokedRepo.On("IsTokenRevoked", ctx, jti).Return(true, nil).Once()

	suite.Require().NoError(suite.service.RevokeAccessToken(ctx, "u1", jti, exp))
	revoked, err := suite.service.IsTokenRevoked(ctx, jti)
	suite.Require().NoError(err)
	suite.True(revoked)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
