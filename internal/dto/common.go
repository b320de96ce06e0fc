package dto

import (
	"time"

	"github.com/SscSPs/cashflow_backend/internal/core/domain"
)

// ListParams defines the paging and visibility query parameters shared by list endpoints.
type ListParams struct {
	Limit          int  `form:"limit,default=20" binding:"min=0,max=100"`
	Offset         int  `form:"offset,default=0" binding:"min=0"`
	IncludeDeleted bool `form:"include_deleted"`
}

// ToOptions converts the query parameters to repository list options.
func (p ListParams) ToOptions() domain.ListOptions {
	return domain.ListOptions{Limit: p.Limit, Offset: p.Offset, IncludeDeleted: p.IncludeDeleted}.Normalize()
}

// GetParams defines the query parameters of single-record lookups.
type GetParams struct {
	IncludeDeleted bool `form:"include_deleted"`
}

// RecordMeta is the audit and lifecycle information included in every entity response.
type RecordMeta struct {
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
	DeletedAt     *time.Time            `json:"deletedAt,omitempty"`
	State         domain.LifecycleState `json:"state"`
}

func toRecordMeta(a domain.AuditFields, d domain.SoftDeleteFields) RecordMeta {
	return RecordMeta{
		CreatedAt:     a.CreatedAt,
		CreatedBy:     a.CreatedBy,
		LastUpdatedAt: a.LastUpdatedAt,
		LastUpdatedBy: a.LastUpdatedBy,
		DeletedAt:     d.DeletedAt,
		State:         d.State(),
	}
}

// mapList converts a slice with the given single-item converter.
func mapList[T any, R any](items []T, convert func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = convert(&items[i])
	}
	return out
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// DateLayout is the wire format of calendar dates (due dates, payment dates).
const DateLayout = "2006-01-02"
