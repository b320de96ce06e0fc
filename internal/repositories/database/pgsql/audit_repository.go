package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertAuditLogQuery = `
		INSERT INTO audit_logs (audit_log_id, action, user_id, entity_id, entity_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	// Keyset pagination on (created_at, audit_log_id), newest first.
	listAuditLogsQuery = `
		SELECT audit_log_id, action, user_id, entity_id, entity_type, created_at
		FROM audit_logs
		WHERE ($1::text IS NULL OR entity_type = $1)
		  AND ($2::text IS NULL OR entity_id = $2)
		  AND ($3::text IS NULL OR user_id = $3)
		  AND ($4::timestamptz IS NULL OR (created_at, audit_log_id) < ($4, $5::uuid))
		ORDER BY created_at DESC, audit_log_id DESC
		LIMIT $6`
)

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(db *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) SaveAuditLog(ctx context.Context, entry domain.AuditLog) error {
	_, err := r.Pool.Exec(ctx, insertAuditLogQuery,
		entry.AuditLogID, entry.Action, entry.UserID, entry.EntityID, entry.EntityType, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save audit log: %w", translatePgError(err))
	}
	return nil
}

// ListAuditLogs returns up to filter.Limit entries older than the (Before, BeforeID) cursor.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	limit := domain.ListOptions{Limit: filter.Limit}.Normalize().Limit
	logs, err := collectMany[domain.AuditLog](ctx, r.Pool, listAuditLogsQuery,
		filter.EntityType, filter.EntityID, filter.UserID, filter.Before, filter.BeforeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
