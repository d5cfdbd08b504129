package submissionguard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	dbmodels "maintenance-backend/models/db"
)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time {
	return c.now
}

func testRecord() dbmodels.MaintenanceRequest {
	return dbmodels.MaintenanceRequest{
		BaseModel:       dbmodels.BaseModel{ID: "req-1"},
		WorkOrderNumber: "WO-20260310-ABCDE",
		TenantName:      "Jane Roe",
		TenantEmail:     "jane@example.com",
	}
}

func runGuardScenarios(t *testing.T, store Store, advance func(d time.Duration)) {
	ctx := context.Background()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	c := &clock{now: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)}
	h := NewHandlerWithDeps(store, 24*time.Hour, loc, c.Now)

	t.Run("без отметки форма доступна", func(t *testing.T) {
		guard, err := h.Check(ctx, "session-1")
		require.NoError(t, err)
		require.Nil(t, guard)
		guard, err = h.Check(ctx, "")
		require.NoError(t, err)
		require.Nil(t, guard)
	})
	t.Run("повторный визит в течение суток", func(t *testing.T) {
		recorded, err := h.Record(ctx, "session-1", testRecord())
		require.NoError(t, err)
		require.Equal(t, c.now.Add(24*time.Hour).Unix(), recorded.ExpiresAt.Unix())

		c.now = c.now.Add(23 * time.Hour)
		advance(23 * time.Hour)
		guard, err := h.Check(ctx, "session-1")
		require.NoError(t, err)
		require.NotNil(t, guard)
		require.Equal(t, "WO-20260310-ABCDE", guard.WorkOrderNumber)
		require.Equal(t, "jane@example.com", guard.TenantEmail)

		other, err := h.Check(ctx, "session-2")
		require.NoError(t, err)
		require.Nil(t, other)
	})
	t.Run("просроченная отметка удаляется", func(t *testing.T) {
		c.now = c.now.Add(2 * time.Hour)
		advance(2 * time.Hour)
		guard, err := h.Check(ctx, "session-1")
		require.NoError(t, err)
		require.Nil(t, guard)
		stored, err := store.Get(ctx, "session-1")
		require.NoError(t, err)
		require.Nil(t, stored)
	})
	t.Run("очистка сессии", func(t *testing.T) {
		_, err := h.Record(ctx, "session-3", testRecord())
		require.NoError(t, err)
		require.NoError(t, h.Clear(ctx, "session-3"))
		guard, err := h.Check(ctx, "session-3")
		require.NoError(t, err)
		require.Nil(t, guard)
	})
	t.Run("без сессии запись невозможна", func(t *testing.T) {
		_, err := h.Record(ctx, "", testRecord())
		require.ErrorIs(t, err, ErrNoSession)
	})
}

func TestGuardMemoryStore(t *testing.T) {
	runGuardScenarios(t, NewMemoryStore(), func(time.Duration) {})
}

func TestGuardRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	runGuardScenarios(t, NewRedisStore(rdb), mr.FastForward)

	t.Run("ключ живет сутки", func(t *testing.T) {
		h := NewHandlerWithDeps(NewRedisStore(rdb), 24*time.Hour, time.UTC, time.Now)
		_, err := h.Record(context.Background(), "session-ttl", testRecord())
		require.NoError(t, err)
		require.Equal(t, 24*time.Hour, mr.TTL(redisKeyPrefix+"session-ttl"))
	})
}

func TestMemoryStorePurge(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	require.NoError(t, store.Set(ctx, "old", dbmodels.SubmissionGuard{Submitted: true, ExpiresAt: now.Add(-time.Minute)}, time.Hour))
	require.NoError(t, store.Set(ctx, "live", dbmodels.SubmissionGuard{Submitted: true, ExpiresAt: now.Add(time.Hour)}, time.Hour))

	count, err := store.Purge(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	live, err := store.Get(ctx, "live")
	require.NoError(t, err)
	require.NotNil(t, live)
}
