package domain

import "time"

// AuditAction is what happened to an entity.
type AuditAction string

const (
	AuditCreate     AuditAction = "create"
	AuditUpdate     AuditAction = "update"
	AuditSoftDelete AuditAction = "soft_delete"
	AuditRestore    AuditAction = "restore"
	AuditPurge      AuditAction = "purge"
)

// AuditLog is an append-only record of a mutation.
type AuditLog struct {
	AuditLogID string      `json:"auditLogID" db:"audit_log_id"`
	Action     AuditAction `json:"action" db:"action"`
	UserID     string      `json:"userID" db:"user_id"`
	EntityID   string      `json:"entityID" db:"entity_id"`
	EntityType EntityType  `json:"entityType" db:"entity_type"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

// AuditLogFilter narrows an audit log listing.
type AuditLogFilter struct {
	EntityType *EntityType
	EntityID   *string
	UserID     *string
	Limit      int
	// Keyset cursor: entries strictly older than (Before, BeforeID).
	Before   *time.Time
	BeforeID *string
}
