package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	CreatedBy     string    `json:"createdBy" db:"created_by"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt" db:"last_updated_at"`
	LastUpdatedBy string    `json:"lastUpdatedBy" db:"last_updated_by"` // UserID Reference
}

// NewAuditFields stamps a freshly created record.
func NewAuditFields(at time.Time, by string) AuditFields {
	return AuditFields{CreatedAt: at, CreatedBy: by, LastUpdatedAt: at, LastUpdatedBy: by}
}

// Touch records a modification. LastUpdatedAt never moves backwards.
func (a *AuditFields) Touch(at time.Time, by string) {
	if at.After(a.LastUpdatedAt) {
		a.LastUpdatedAt = at
	}
	a.LastUpdatedBy = by
}

// ListOptions are the common paging and visibility knobs for list queries.
type ListOptions struct {
	Limit          int
	Offset         int
	IncludeDeleted bool
}

// Normalize clamps paging values into a sane range.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}
