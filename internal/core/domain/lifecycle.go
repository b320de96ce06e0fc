package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
)

// LifecycleState is the soft-delete state of a persisted record.
type LifecycleState string

const (
	StateActive  LifecycleState = "ACTIVE"
	StateDeleted LifecycleState = "DELETED"
	// StatePurged is terminal: the row no longer exists.
	StatePurged LifecycleState = "PURGED"
)

// SoftDeletable is implemented by every entity that embeds SoftDeleteFields.
type SoftDeletable interface {
	IsDeleted() bool
	State() LifecycleState
	MarkDeleted(at time.Time) error
	Restore() error
}

// SoftDeleteFields is embedded by entities that support soft delete and restore.
type SoftDeleteFields struct {
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"`
}

var _ SoftDeletable = (*SoftDeleteFields)(nil)

func (f *SoftDeleteFields) IsDeleted() bool {
	return f.DeletedAt != nil
}

func (f *SoftDeleteFields) State() LifecycleState {
	if f.IsDeleted() {
		return StateDeleted
	}
	return StateActive
}

// MarkDeleted moves an ACTIVE record to DELETED.
func (f *SoftDeleteFields) MarkDeleted(at time.Time) error {
	if f.IsDeleted() {
		return fmt.Errorf("%w: record is already deleted", apperrors.ErrInvalidState)
	}
	f.DeletedAt = &at
	return nil
}

// Restore moves a DELETED record back to ACTIVE.
func (f *SoftDeleteFields) Restore() error {
	if !f.IsDeleted() {
		return fmt.Errorf("%w: record is not deleted", apperrors.ErrInvalidState)
	}
	f.DeletedAt = nil
	return nil
}

// FilterActive returns the records that are not soft deleted.
func FilterActive[T any, P interface {
	*T
	SoftDeletable
}](records []T) []T {
	out := make([]T, 0, len(records))
	for i := range records {
		if !P(&records[i]).IsDeleted() {
			out = append(out, records[i])
		}
	}
	return out
}

// EntityType names a lifecycle-managed table for audit entries and error messages.
type EntityType string

const (
	EntityAccount         EntityType = "account"
	EntityTransfer        EntityType = "transfer"
	EntityCustomer        EntityType = "customer"
	EntityVendor          EntityType = "vendor"
	EntityCustomerContact EntityType = "customer_contact"
	EntityVendorContact   EntityType = "vendor_contact"
	EntityProductService  EntityType = "product_service"
	EntityCategory        EntityType = "category"
	EntityInvoice         EntityType = "invoice"
	EntityPayment         EntityType = "payment"
	EntityUser            EntityType = "user"
)
