package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// UserReader defines read operations for user data
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByRefreshTokenHash finds the user currently holding the refresh token with this hash.
	FindUserByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*domain.User, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdatePasswordInTx sets a new password hash and drops the stored refresh token in one statement.
	UpdatePasswordInTx(ctx context.Context, tx pgx.Tx, userID string, passwordHash string, updatedAt time.Time) error
	UpdateRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error

	// UpdateRefreshToken stores the hash and expiry of the user's current refresh token.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	TransactionManager
}

// RevokedTokenRepository persists logged-out access tokens until they would have expired anyway.
type RevokedTokenRepository interface {
	RevokeToken(ctx context.Context, token domain.RevokedToken) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpiredRevokedTokens(ctx context.Context, before time.Time) (int64, error)
}

// PasswordResetTokenRepository persists single-use password reset tokens.
type PasswordResetTokenRepository interface {
	SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error
	FindResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error)

	// MarkResetTokenUsedInTx fails with apperrors.ErrInvalidState if the token was already used.
	MarkResetTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenHash string, usedAt time.Time) error
	DeleteResetTokensCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

// AuditLogRepository persists the append-only audit trail.
type AuditLogRepository interface {
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
	ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error)
}
