package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestActiveClause(t *testing.T) {
	assert.Equal(t, " WHERE deleted_at IS NULL", activeClause(false, "WHERE"))
	assert.Equal(t, " AND deleted_at IS NULL", activeClause(false, "AND"))
	assert.Empty(t, activeClause(true, "WHERE"))
	assert.Empty(t, activeClause(true, "AND"))
}

func TestActiveClause_ListQuery(t *testing.T) {
	base := `SELECT payment_id FROM payments WHERE invoice_id = $1`

	assert.Equal(t, base+` AND deleted_at IS NULL ORDER BY payment_date`,
		base+activeClause(false, "AND")+` ORDER BY payment_date`)
	assert.NotContains(t, base+activeClause(true, "AND")+` ORDER BY payment_date`, "deleted_at")
}

func TestUpdatePaymentQuery_SkipsDeletedPayments(t *testing.T) {
	assert.Contains(t, updatePaymentQuery, "deleted_at IS NULL")
}

func TestTranslatePgError(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrValidation},
		{"check", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrValidation},
		{"bad uuid", &pgconn.PgError{Code: pgInvalidTextRepr}, apperrors.ErrValidation},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrConcurrencyConflict},
		{"unknown", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translatePgError(tt.in), tt.want)
		})
	}
	assert.NoError(t, translatePgError(nil))
}

func TestExecOne_NoRowsIsNotFound(t *testing.T) {
	db := new(mockDB)
	db.On("Exec", "UPDATE accounts SET name = $2 WHERE account_id = $1", []any{"acc-1", "x"}).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil).Once()

	err := execOne(context.Background(), db, "UPDATE accounts SET name = $2 WHERE account_id = $1", "acc-1", "x")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	db.AssertExpectations(t)
}
