package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"octofit-tracker/internal/events"
	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/models"
	"octofit-tracker/internal/observability"
	"octofit-tracker/internal/ranking"
	"octofit-tracker/internal/repository"
)

// LeaderboardService regenerates the leaderboard from users and activities
// and exposes the published snapshot
type LeaderboardService struct {
	store     *repository.Store
	publisher repository.SnapshotPublisher
	events    events.Publisher
	log       *logger.Logger

	// recomputes are batch replacements of the whole collection; two
	// running at once would interleave clear and insert
	mu sync.Mutex
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(
	store *repository.Store,
	publisher repository.SnapshotPublisher,
	eventPublisher events.Publisher,
) *LeaderboardService {
	return &LeaderboardService{
		store:     store,
		publisher: publisher,
		events:    eventPublisher,
		log:       logger.Component("leaderboard"),
	}
}

// Recompute ranks every user by total calories and replaces the stored
// leaderboard, then publishes the snapshot
func (s *LeaderboardService) Recompute(ctx context.Context, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	entries, err := s.recompute(ctx)
	observability.RecordRecompute(len(entries), time.Since(start), err)
	if err != nil {
		return err
	}

	s.events.LeaderboardRecomputed(ctx, len(entries), reason)
	s.log.WithFields(map[string]interface{}{
		"entries": len(entries),
		"reason":  reason,
		"took":    time.Since(start).String(),
	}).Info("Leaderboard recomputed")
	return nil
}

func (s *LeaderboardService) recompute(ctx context.Context) ([]models.LeaderboardEntry, error) {
	users, err := s.store.Users.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	activities, err := s.store.Activities.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	entries := ranking.Compute(users, activities)

	if err := s.store.Leaderboard.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear leaderboard: %w", err)
	}
	if err := s.store.Leaderboard.InsertMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("insert leaderboard: %w", err)
	}
	if err := s.publisher.Publish(ctx, entries); err != nil {
		return nil, fmt.Errorf("publish snapshot: %w", err)
	}
	return entries, nil
}

// Top returns the best n entries of the published snapshot. Before anything
// has been published in this process the stored leaderboard is used.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 || n > 100 {
		n = 10
	}

	version, err := s.publisher.Version(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot version: %w", err)
	}
	if version > 0 {
		return s.publisher.Top(ctx, n)
	}

	entries, err := s.store.Leaderboard.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Version returns the snapshot version; the websocket hub polls it
func (s *LeaderboardService) Version(ctx context.Context) (int64, error) {
	return s.publisher.Version(ctx)
}

// HealthCheck pings the store and the snapshot publisher
func (s *LeaderboardService) HealthCheck(ctx context.Context) (map[string]string, error) {
	status := map[string]string{
		"store":     "healthy",
		"publisher": "healthy",
	}

	var firstErr error
	if err := s.store.Ping(ctx); err != nil {
		status["store"] = "unhealthy"
		firstErr = fmt.Errorf("store: %w", err)
	}
	if err := s.publisher.Ping(ctx); err != nil {
		status["publisher"] = "unhealthy"
		if firstErr == nil {
			firstErr = fmt.Errorf("publisher: %w", err)
		}
	}
	return status, firstErr
}
