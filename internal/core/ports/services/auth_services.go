package services

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/utils"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (utils.IssuedToken, error)

	// GenerateRefreshToken creates a new refresh token, stores its hash on the user and returns the raw token.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// ValidateAndParseRefreshToken looks up the owner of a raw refresh token and checks its expiry.
	ValidateAndParseRefreshToken(ctx context.Context, refreshTokenString string) (*domain.User, error)

	// RevokeAccessToken records the token id so it is rejected until it expires.
	RevokeAccessToken(ctx context.Context, userID, jti string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredRevocations removes revocation rows for tokens that have expired anyway.
	DeleteExpiredRevocations(ctx context.Context) (int64, error)
}

// PasswordResetSvcFacade implements the forgot-password flow.
type PasswordResetSvcFacade interface {
	// RequestReset mails a reset link when email belongs to a user. Unknown emails are not reported.
	RequestReset(ctx context.Context, email string) error

	// ValidateResetToken fails with apperrors.ErrValidation for unknown, used or expired tokens.
	ValidateResetToken(ctx context.Context, token string) error

	ResetPassword(ctx context.Context, token string, newPassword string) error

	// DeleteOldResetTokens removes reset tokens created more than retention ago.
	DeleteOldResetTokens(ctx context.Context, retention time.Duration) (int64, error)
}

// AuditLogSvcFacade reads the audit trail.
type AuditLogSvcFacade interface {
	// ListAuditLogs returns one page and the cursor of the next one (nil on the last page).
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, *string, error)
}
