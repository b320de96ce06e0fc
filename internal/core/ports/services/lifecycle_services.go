package services

import "context"

// LifecycleSvc is the soft delete, restore and purge surface shared by every entity service.
type LifecycleSvc interface {
	// SoftDelete marks an active record deleted. Fails with apperrors.ErrInvalidState if it already is.
	SoftDelete(ctx context.Context, id string, userID string) error

	// Restore brings a deleted record back. Fails with apperrors.ErrInvalidState if it is active.
	Restore(ctx context.Context, id string, userID string) error

	// Purge removes the record permanently.
	Purge(ctx context.Context, id string, userID string) error
}
