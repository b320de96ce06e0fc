package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	revokeTokenQuery = `
		INSERT INTO revoked_tokens (jti, user_id, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (jti) DO NOTHING`

	isTokenRevokedQuery = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`

	deleteExpiredRevokedTokensQuery = `DELETE FROM revoked_tokens WHERE expires_at < $1`

	insertResetTokenQuery = `
		INSERT INTO password_reset_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)`

	findResetTokenQuery = `
		SELECT token_hash, user_id, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token_hash = $1`

	markResetTokenUsedQuery = `
		UPDATE password_reset_tokens SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL`

	deleteResetTokensCreatedBeforeQuery = `DELETE FROM password_reset_tokens WHERE created_at < $1`
)

type PgxRevokedTokenRepository struct {
	BaseRepository
}

func newPgxRevokedTokenRepository(db *pgxpool.Pool) portsrepo.RevokedTokenRepository {
	return &PgxRevokedTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.RevokedTokenRepository = (*PgxRevokedTokenRepository)(nil)

// RevokeToken records a logged-out token. Revoking the same jti twice is a no-op.
func (r *PgxRevokedTokenRepository) RevokeToken(ctx context.Context, token domain.RevokedToken) error {
	if _, err := r.Pool.Exec(ctx, revokeTokenQuery, token.JTI, token.UserID, token.ExpiresAt, token.RevokedAt); err != nil {
		return fmt.Errorf("failed to revoke token: %w", translatePgError(err))
	}
	return nil
}

func (r *PgxRevokedTokenRepository) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	if err := r.Pool.QueryRow(ctx, isTokenRevokedQuery, jti).Scan(&revoked); err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return revoked, nil
}

func (r *PgxRevokedTokenRepository) DeleteExpiredRevokedTokens(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, deleteExpiredRevokedTokensQuery, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired revoked tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

type PgxPasswordResetTokenRepository struct {
	BaseRepository
}

func newPgxPasswordResetTokenRepository(db *pgxpool.Pool) portsrepo.PasswordResetTokenRepository {
	return &PgxPasswordResetTokenRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PasswordResetTokenRepository = (*PgxPasswordResetTokenRepository)(nil)

func (r *PgxPasswordResetTokenRepository) SaveResetToken(ctx context.Context, token domain.PasswordResetToken) error {
	_, err := r.Pool.Exec(ctx, insertResetTokenQuery, token.TokenHash, token.UserID, token.ExpiresAt, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save password reset token: %w", translatePgError(err))
	}
	return nil
}

func (r *PgxPasswordResetTokenRepository) FindResetToken(ctx context.Context, tokenHash string) (*domain.PasswordResetToken, error) {
	return collectOne[domain.PasswordResetToken](ctx, r.Pool, findResetTokenQuery, tokenHash)
}

// MarkResetTokenUsedInTx consumes the token. Only the first caller wins.
func (r *PgxPasswordResetTokenRepository) MarkResetTokenUsedInTx(ctx context.Context, tx pgx.Tx, tokenHash string, usedAt time.Time) error {
	return markResetTokenUsed(ctx, tx, tokenHash, usedAt)
}

func markResetTokenUsed(ctx context.Context, db dbtx, tokenHash string, usedAt time.Time) error {
	tag, err := db.Exec(ctx, markResetTokenUsedQuery, tokenHash, usedAt)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", translatePgError(err))
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var usedAtDB *time.Time
	err = db.QueryRow(ctx, `SELECT used_at FROM password_reset_tokens WHERE token_hash = $1`, tokenHash).Scan(&usedAtDB)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up reset token: %w", err)
	}
	return fmt.Errorf("%w: reset token already used", apperrors.ErrInvalidState)
}

func (r *PgxPasswordResetTokenRepository) DeleteResetTokensCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.Pool.Exec(ctx, deleteResetTokensCreatedBeforeQuery, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old reset tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
