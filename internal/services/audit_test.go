package services

import (
	"context"
	"testing"
	"time"

	"github.com/huangang/boardmaster/internal/config"
	"github.com/huangang/boardmaster/internal/models"
	"github.com/huangang/boardmaster/internal/models/modelstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordAndList(t *testing.T) {
	db := modelstest.NewDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	entries := []models.AuditLog{
		{ProjectID: "p1", UserID: "u1", Module: "tasks", Action: "create", CreatedAt: base},
		{ProjectID: "p1", UserID: "u2", Module: "members", Action: "update", CreatedAt: base.Add(time.Minute)},
		{ProjectID: "p1", UserID: "u1", Module: "tasks", Action: "delete", CreatedAt: base.Add(2 * time.Minute)},
		{ProjectID: "p2", UserID: "u1", Module: "tasks", Action: "create"},
	}
	for i := range entries {
		require.NoError(t, svc.Record(ctx, &entries[i]))
		assert.NotEmpty(t, entries[i].ID)
	}
	assert.False(t, entries[3].CreatedAt.IsZero())

	resp, err := svc.List(ctx, "p1", &AuditLogListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PageSize)
	require.Len(t, resp.Items, 3)
	assert.Equal(t, "delete", resp.Items[0].Action, "newest first")

	resp, err = svc.List(ctx, "p1", &AuditLogListRequest{Module: "tasks", UserID: "u1", PageSize: 1, Page: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "create", resp.Items[0].Action)
}

func TestAuditService_CleanupOlderThan(t *testing.T) {
	db := modelstest.NewDB(t)
	svc := NewAuditService(db)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, &models.AuditLog{ProjectID: "p", CreatedAt: time.Now().AddDate(0, 0, -40)}))
	require.NoError(t, svc.Record(ctx, &models.AuditLog{ProjectID: "p", CreatedAt: time.Now().AddDate(0, 0, -2)}))

	deleted, err := svc.CleanupOlderThan(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, deleted, "zero retention keeps everything")

	deleted, err = svc.CleanupOlderThan(ctx, 30)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	resp, err := svc.List(ctx, "p", &AuditLogListRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
}

func TestStartAuditCleanup(t *testing.T) {
	db := modelstest.NewDB(t)
	svc := NewAuditService(db)

	_, err := StartAuditCleanup(svc, config.AuditConfig{CleanupCron: "not a schedule", RetentionDays: 1})
	assert.Error(t, err)

	scheduler, err := StartAuditCleanup(svc, config.AuditConfig{CleanupCron: "@hourly", RetentionDays: 1})
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 1)
	<-scheduler.Stop().Done()
}
