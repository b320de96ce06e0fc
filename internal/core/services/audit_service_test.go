package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_backend/internal/apperrors"
	"github.com/SscSPs/cashflow_backend/internal/core/domain"
	"github.com/SscSPs/cashflow_backend/internal/core/services"
	"github.com/SscSPs/cashflow_backend/internal/dto"
	"github.com/SscSPs/cashflow_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuditLogService_KeysetPaging(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAuditLogRepository)
	svc := services.NewAuditLogService(repo)

	t1 := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Minute)
	page1 := []domain.AuditLog{
		{AuditLogID: "b", CreatedAt: t1, Action: domain.AuditCreate},
		{AuditLogID: "a", CreatedAt: t0, Action: domain.AuditUpdate},
	}
	repo.On("ListAuditLogs", ctx, mock.MatchedBy(func(f domain.AuditLogFilter) bool {
		return f.Limit == 2 && f.Before == nil && f.EntityType != nil && *f.EntityType == domain.EntityInvoice
	})).Return(page1, nil).Once()

	entityType := "invoice"
	logs, next, err := svc.ListAuditLogs(ctx, dto.ListAuditLogsParams{EntityType: &entityType, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	require.NotNil(t, next)

	before, beforeID, err := pagination.DecodeKeysetToken(*next)
	require.NoError(t, err)
	assert.True(t, before.Equal(t0))
	assert.Equal(t, "a", beforeID)

	repo.On("ListAuditLogs", ctx, mock.MatchedBy(func(f domain.AuditLogFilter) bool {
		return f.Before != nil && f.Before.Equal(t0) && *f.BeforeID == "a"
	})).Return([]domain.AuditLog{{AuditLogID: "z", CreatedAt: t0.Add(-time.Hour)}}, nil).Once()

	logs, next, err = svc.ListAuditLogs(ctx, dto.ListAuditLogsParams{Limit: 2, NextToken: next})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Nil(t, next, "a short page is the last one")
}

func TestAuditLogService_BadToken(t *testing.T) {
	svc := services.NewAuditLogService(new(MockAuditLogRepository))
	bad := "!!not-base64!!"

	_, _, err := svc.ListAuditLogs(context.Background(), dto.ListAuditLogsParams{NextToken: &bad})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
