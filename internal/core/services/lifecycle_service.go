package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
)

// lifecycleService implements soft delete, restore and purge for one entity type.
// Entity services embed it; services whose lifecycle moves derived state define their own methods.
type lifecycleService struct {
	BaseService
	store      portsrepo.LifecycleManager
	entityType domain.EntityType
}

func newLifecycleService(store portsrepo.LifecycleManager, entityType domain.EntityType, audit portsrepo.AuditLogRepository) lifecycleService {
	return lifecycleService{
		BaseService: BaseService{AuditRepo: audit},
		store:       store,
		entityType:  entityType,
	}
}

func (s *lifecycleService) SoftDelete(ctx context.Context, id string, userID string) error {
	if err := s.store.MarkDeleted(ctx, id, time.Now().UTC()); err != nil {
		s.LogUnexpected(ctx, err, "Failed to soft delete record", s.attrs(id)...)
		return err
	}
	s.RecordAudit(ctx, domain.AuditSoftDelete, s.entityType, id, userID)
	s.LogInfo(ctx, "Record soft deleted", s.attrs(id)...)
	return nil
}

func (s *lifecycleService) Restore(ctx context.Context, id string, userID string) error {
	if err := s.store.Restore(ctx, id); err != nil {
		s.LogUnexpected(ctx, err, "Failed to restore record", s.attrs(id)...)
		return err
	}
	s.RecordAudit(ctx, domain.AuditRestore, s.entityType, id, userID)
	s.LogInfo(ctx, "Record restored", s.attrs(id)...)
	return nil
}

func (s *lifecycleService) Purge(ctx context.Context, id string, userID string) error {
	if err := s.store.Purge(ctx, id); err != nil {
		s.LogUnexpected(ctx, err, "Failed to purge record", s.attrs(id)...)
		return err
	}
	s.RecordAudit(ctx, domain.AuditPurge, s.entityType, id, userID)
	s.LogInfo(ctx, "Record purged", s.attrs(id)...)
	return nil
}

func (s *lifecycleService) attrs(id string) []any {
	return []any{slog.String("entity_type", string(s.entityType)), slog.String("entity_id", id)}
}

// visible hides soft deleted records from single-record reads unless includeDeleted is set.
func visible[T any, P interface {
	*T
	domain.SoftDeletable
}](rec *T, includeDeleted bool) (*T, error) {
	if !includeDeleted && P(rec).IsDeleted() {
		return nil, apperrors.ErrNotFound
	}
	return rec, nil
}

// requireActive rejects edits of soft deleted records.
func requireActive(rec domain.SoftDeletable, entityType domain.EntityType) error {
	if rec.IsDeleted() {
		return fmt.Errorf("%w: %s is deleted, restore it first", apperrors.ErrInvalidState, entityType)
	}
	return nil
}
