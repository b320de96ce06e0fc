package dto

import (
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

// ListAuditLogsParams filters the audit trail. NextToken is the opaque cursor of the previous page.
type ListAuditLogsParams struct {
	EntityType *string `form:"entity_type"`
	EntityID   *string `form:"entity_id"`
	UserID     *string `form:"user_id"`
	Limit      int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken  *string `form:"next_token"`
}

type AuditLogResponse struct {
	AuditLogID string             `json:"auditLogID"`
	Action     domain.AuditAction `json:"action"`
	UserID     string             `json:"userID"`
	EntityID   string             `json:"entityID"`
	EntityType domain.EntityType  `json:"entityType"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func ToAuditLogResponse(l *domain.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		AuditLogID: l.AuditLogID,
		Action:     l.Action,
		UserID:     l.UserID,
		EntityID:   l.EntityID,
		EntityType: l.EntityType,
		CreatedAt:  l.CreatedAt,
	}
}

type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"auditLogs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

func ToListAuditLogsResponse(logs []domain.AuditLog, nextToken *string) ListAuditLogsResponse {
	return ListAuditLogsResponse{AuditLogs: mapList(logs, ToAuditLogResponse), NextToken: nextToken}
}
