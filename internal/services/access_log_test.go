package services

import (
	"context"
	"testing"
	"time"

	"github.com/hubinova/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogListAndCleanup(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewAccessLogService(db, 30, nil)
	now := time.Now()

	uid := uint(7)
	entries := []*models.AccessLog{
		{UserID: &uid, Email: "a@b.com", Method: "GET", Path: "/api/challenges", Status: 200, CreatedAt: now.AddDate(0, 0, -40)},
		{Email: models.AnonymousActor, Method: "GET", Path: "/api/news", Status: 200, CreatedAt: now.AddDate(0, 0, -1)},
		{UserID: &uid, Email: "a@b.com", Method: "POST", Path: "/api/solutions", Status: 201},
	}
	for _, e := range entries {
		require.NoError(t, svc.Record(ctx, e))
	}

	page, err := svc.List(ctx, &AccessLogListRequest{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "/api/solutions", page.Items[0].Path)

	mine, err := svc.List(ctx, &AccessLogListRequest{Email: "a@b.com", Method: "GET"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), mine.Total)
	assert.Equal(t, 50, mine.Limit)

	deleted, err := svc.Cleanup(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	rest, err := svc.List(ctx, &AccessLogListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), rest.Total)
}

func TestAccessLogCleanupDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := NewAccessLogService(db, 0, nil)
	n, err := svc.Cleanup(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, svc.StartScheduler("0 3 * * *"))
	svc.StopScheduler()
}

func TestAccessLogSchedulerRejectsBadSpec(t *testing.T) {
	svc := NewAccessLogService(newTestDB(t), 30, nil)
	assert.Error(t, svc.StartScheduler("not a cron"))
}
