package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoftDeleteFields_Transitions(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	var f domain.SoftDeleteFields

	assert.Equal(t, domain.StateActive, f.State())
	assert.ErrorIs(t, f.Restore(), apperrors.ErrInvalidState, "restore of an active record")

	require.NoError(t, f.MarkDeleted(now))
	assert.Equal(t, domain.StateDeleted, f.State())
	require.NotNil(t, f.DeletedAt)
	assert.Equal(t, now, *f.DeletedAt)

	assert.ErrorIs(t, f.MarkDeleted(now.Add(time.Minute)), apperrors.ErrInvalidState, "second soft delete")
	assert.Equal(t, now, *f.DeletedAt, "failed soft delete keeps the original timestamp")

	require.NoError(t, f.Restore())
	assert.Equal(t, domain.StateActive, f.State())
	assert.Nil(t, f.DeletedAt)
}

func TestSoftDeleteThenRestore_IsIdentity(t *testing.T) {
	original := domain.Customer{
		CustomerID: "c1",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Email:      "ada@example.com",
		Phone:      "555-0100",
	}
	c := original

	require.NoError(t, c.MarkDeleted(time.Now()))
	require.NoError(t, c.Restore())

	assert.Equal(t, original, c)
}

func TestFilterActive(t *testing.T) {
	deletedAt := time.Now()
	accounts := []domain.Account{
		{AccountID: "a1"},
		{AccountID: "a2", SoftDeleteFields: domain.SoftDeleteFields{DeletedAt: &deletedAt}},
		{AccountID: "a3"},
	}

	active := domain.FilterActive(accounts)

	require.Len(t, active, 2)
	for _, a := range active {
		assert.False(t, a.IsDeleted())
	}
	assert.Equal(t, "a1", active[0].AccountID)
	assert.Equal(t, "a3", active[1].AccountID)
}

func TestAuditFields_TouchIsMonotonic(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := domain.NewAuditFields(t0, "u1")

	a.Touch(t0.Add(time.Hour), "u2")
	assert.Equal(t, t0.Add(time.Hour), a.LastUpdatedAt)
	assert.Equal(t, "u2", a.LastUpdatedBy)

	a.Touch(t0, "u3")
	assert.Equal(t, t0.Add(time.Hour), a.LastUpdatedAt, "clock skew must not move the timestamp back")
	assert.Equal(t, "u3", a.LastUpdatedBy)
}

func TestListOptions_Normalize(t *testing.T) {
	assert.Equal(t, domain.ListOptions{Limit: 20}, domain.ListOptions{Limit: 0, Offset: -4}.Normalize())
	assert.Equal(t, domain.ListOptions{Limit: 100, Offset: 5, IncludeDeleted: true}, domain.ListOptions{Limit: 500, Offset: 5, IncludeDeleted: true}.Normalize())
}

func TestPasswordResetToken_Usable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)

	assert.True(t, (&domain.PasswordResetToken{ExpiresAt: now.Add(time.Hour)}).Usable(now))
	assert.False(t, (&domain.PasswordResetToken{ExpiresAt: now.Add(-time.Second)}).Usable(now))
	assert.False(t, (&domain.PasswordResetToken{ExpiresAt: now.Add(time.Hour), UsedAt: &used}).Usable(now))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, domain.RoleAdmin.Valid())
	assert.False(t, domain.Role("owner").Valid())
}
