package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashflow_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashflow_backend/internal/core/ports/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/utils/pagination"
)

type auditLogService struct {
	BaseService
}

func NewAuditLogService(repo portsrepo.AuditLogRepository) portssvc.AuditLogSvcFacade {
	return &auditLogService{BaseService: BaseService{AuditRepo: repo}}
}

func (s *auditLogService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLog, *string, error) {
	limit := domain.ListOptions{Limit: params.Limit}.Normalize().Limit
	filter := domain.AuditLogFilter{
		EntityID: params.EntityID,
		UserID:   params.UserID,
		Limit:    limit,
	}
	if params.EntityType != nil {
		et := domain.EntityType(*params.EntityType)
		filter.EntityType = &et
	}
	if params.NextToken != nil && *params.NextToken != "" {
		before, beforeID, err := pagination.DecodeKeysetToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid next_token", apperrors.ErrValidation)
		}
		filter.Before = &before
		filter.BeforeID = &beforeID
	}

	logs, err := s.AuditRepo.ListAuditLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, nil, err
	}
	if logs == nil {
		logs = []domain.AuditLog{}
	}

	var next *string
	if len(logs) == limit {
		last := logs[len(logs)-1]
		token := pagination.EncodeKeysetToken(last.CreatedAt, last.AuditLogID)
		next = &token
	}
	return logs, next, nil
}
