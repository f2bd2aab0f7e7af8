package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"octofit-tracker/internal/events"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	events.NoopPublisher
	mu         sync.Mutex
	recomputes []int
}

func (r *recordingEvents) LeaderboardRecomputed(ctx context.Context, entries int, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recomputes = append(r.recomputes, entries)
}

type brokenPublisher struct {
	*repository.LocalPublisher
}

func (brokenPublisher) Publish(context.Context, []models.LeaderboardEntry) error {
	return errors.New("redis down")
}

func (brokenPublisher) Ping(context.Context) error { return errors.New("redis down") }

func seedStore(t *testing.T, store *repository.Store) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Users.InsertMany(ctx, []models.User{
		{ID: 1, Name: "A", Email: "a@x.io", TeamID: 1, Role: models.RoleHero, CreatedAt: now},
		{ID: 2, Name: "B", Email: "b@x.io", TeamID: 2, Role: models.RoleHero, CreatedAt: now},
	}))
	require.NoError(t, store.Activities.InsertMany(ctx, []models.Activity{
		{ID: 1, UserID: 1, Type: models.ActivityRunning, Duration: 30, Distance: 5, Calories: 200, Date: now},
		{ID: 2, UserID: 2, Type: models.ActivityYoga, Duration: 60, Distance: 0, Calories: 450, Date: now},
	}))
	// stale entry that a recompute must replace
	require.NoError(t, store.Leaderboard.Create(ctx, models.LeaderboardEntry{ID: 99, UserID: 99, UserName: "gone", Rank: 1}))
}

func TestRecomputeReplacesLeaderboard(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedStore(t, store)
	publisher := repository.NewLocalPublisher()
	ev := &recordingEvents{}

	svc := NewLeaderboardService(store, publisher, ev)
	require.NoError(t, svc.Recompute(ctx, "test"))

	entries, err := store.Leaderboard.List(ctx, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].UserID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, int64(1), entries[1].UserID)

	version, err := svc.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)
	assert.Equal(t, []int{2}, ev.recomputes)

	top, err := svc.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "B", top[0].UserName)
}

func TestTopFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedStore(t, store)

	svc := NewLeaderboardService(store, repository.NewLocalPublisher(), events.NoopPublisher{})

	top, err := svc.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "gone", top[0].UserName)
}

func TestRecomputePublishFailure(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedStore(t, store)
	ev := &recordingEvents{}

	svc := NewLeaderboardService(store, brokenPublisher{repository.NewLocalPublisher()}, ev)
	err := svc.Recompute(ctx, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish snapshot")
	assert.Empty(t, ev.recomputes)
}

func TestHealthCheck(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()

	status, err := NewLeaderboardService(store, repository.NewLocalPublisher(), events.NoopPublisher{}).HealthCheck(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", status["store"])

	status, err = NewLeaderboardService(store, brokenPublisher{repository.NewLocalPublisher()}, events.NoopPublisher{}).HealthCheck(ctx)
	require.Error(t, err)
	assert.Equal(t, "unhealthy", status["publisher"])
	assert.Equal(t, "healthy", status["store"])
}
