package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/platform/config"
	"github.com/SscSPs/cashflow_backend/internal/utils"
)

// tokenService issues access and refresh tokens and tracks logged-out access tokens.
type tokenService struct {
	BaseService
	cfg         *config.Config
	userRepo    portsrepo.UserRepositoryFacade
	revokedRepo portsrepo.RevokedTokenRepository
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, revokedRepo portsrepo.RevokedTokenRepository) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:         cfg,
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (utils.IssuedToken, error) {
	issued, err := utils.GenerateJWT(user.UserID, user.Username, user.Email, string(user.Role),
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return utils.IssuedToken{}, err
	}
	return issued, nil
}

// GenerateRefreshToken creates a new refresh token; only its hash is stored. Issuing one replaces the previous token.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateOpaqueToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	expiry := time.Now().UTC().Add(s.cfg.RefreshTokenExpiryDuration)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, utils.HashOpaqueToken(raw), expiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return raw, expiry, nil
}

// ValidateAndParseRefreshToken returns the user holding refreshTokenString.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error) {
	if refreshTokenString == "" {
		return nil, fmt.Errorf("%w: refresh token missing", apperrors.ErrUnauthorized)
	}

	hash := utils.HashOpaqueToken(refreshTokenString)
	user, err := s.userRepo.FindUserByRefreshTokenHash(ctx, hash)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenHash == nil || user.RefreshTokenExpiryTime == nil ||
		!utils.CompareOpaqueTokenHash(refreshTokenString, *user.RefreshTokenHash) {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}

func (s *tokenService) RevokeAccessToken(ctx context.Context, userID, jti string, expiresAt time.Time) error {
	err := s.revokedRepo.RevokeToken(ctx, domain.RevokedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		RevokedAt: time.Now().UTC(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to revoke access token", slog.String("user_id", userID))
	}
	return err
}

func (s *tokenService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revokedRepo.IsTokenRevoked(ctx, jti)
}

func (s *tokenService) DeleteExpiredRevocations(ctx context.Context) (int64, error) {
	return s.revokedRepo.DeleteExpiredRevokedTokens(ctx, time.Now().UTC())
}
