package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	userColumns = `user_id, username, email, name, role, password_hash, refresh_token_hash, refresh_token_expiry_time,
		created_at, created_by, last_updated_at, last_updated_by, deleted_at`

	insertUserQuery = `
		INSERT INTO users (user_id, username, email, name, role, password_hash, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	findActiveUserBy = `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL AND `

	findUsersQuery = `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL
		ORDER BY created_at DESC, user_id LIMIT $1 OFFSET $2`

	updatePasswordQuery = `
		UPDATE users
		SET password_hash = $2, refresh_token_hash = NULL, refresh_token_expiry_time = NULL,
			last_updated_at = GREATEST(last_updated_at, $3), last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL`

	updateRoleQuery = `
		UPDATE users
		SET role = $2, last_updated_at = GREATEST(last_updated_at, $4), last_updated_by = $3
		WHERE user_id = $1 AND deleted_at IS NULL`

	updateRefreshTokenQuery = `
		UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3
		WHERE user_id = $1 AND deleted_at IS NULL`

	clearRefreshTokenQuery = `
		UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL
		WHERE user_id = $1`
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	_, err := r.Pool.Exec(ctx, insertUserQuery,
		user.UserID,
		user.Username,
		user.Email,
		user.Name,
		user.Role,
		user.PasswordHash,
		user.CreatedAt,
		user.CreatedBy,
		user.LastUpdatedAt,
		user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.Username, translatePgError(err))
	}
	return nil
}

// FindUserByID retrieves a non-deleted user by ID.
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.Pool, findActiveUserBy+`user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.Pool, findActiveUserBy+`username = $1`, username)
}

// FindUserByEmail matches case-insensitively.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.Pool, findActiveUserBy+`LOWER(email) = LOWER($1)`, email)
}

func (r *PgxUserRepository) FindUserByRefreshTokenHash(ctx context.Context, refreshTokenHash string) (*domain.User, error) {
	return collectOne[domain.User](ctx, r.Pool, findActiveUserBy+`refresh_token_hash = $1`, refreshTokenHash)
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	opts := domain.ListOptions{Limit: limit, Offset: offset}.Normalize()
	users, err := collectMany[domain.User](ctx, r.Pool, findUsersQuery, opts.Limit, opts.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdatePasswordInTx sets a new password hash and drops any outstanding refresh token.
func (r *PgxUserRepository) UpdatePasswordInTx(ctx context.Context, tx pgx.Tx, userID string, passwordHash string, updatedAt time.Time) error {
	return execOne(ctx, tx, updatePasswordQuery, userID, passwordHash, updatedAt)
}

func (r *PgxUserRepository) UpdateRole(ctx context.Context, userID string, role domain.Role, updatedBy string, updatedAt time.Time) error {
	return execOne(ctx, r.Pool, updateRoleQuery, userID, role, updatedBy, updatedAt)
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	return execOne(ctx, r.Pool, updateRefreshTokenQuery, userID, refreshTokenHash, refreshTokenExpiryTime)
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	_, err := r.Pool.Exec(ctx, clearRefreshTokenQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token for user %s: %w", userID, translatePgError(err))
	}
	return nil
}
