// Package events publishes domain events about activities and leaderboard
// recomputes. Publishing is best effort: failures are logged and counted,
// never returned to API callers.
package events

import (
	"context"
	"time"

	"octofit-tracker/internal/models"
)

// Event types
const (
	TypeActivityRecorded      = "activity.recorded"
	TypeLeaderboardRecomputed = "leaderboard.recomputed"
)

// ActivityRecordedEvent is emitted after an activity is stored
type ActivityRecordedEvent struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Activity   models.Activity `json:"activity"`
}

// LeaderboardRecomputedEvent is emitted after the leaderboard is regenerated
type LeaderboardRecomputedEvent struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Entries    int       `json:"entries"`
	Reason     string    `json:"reason"`
}

// Publisher emits domain events
type Publisher interface {
	ActivityRecorded(ctx context.Context, activity models.Activity)
	LeaderboardRecomputed(ctx context.Context, entries int, reason string)
	Close() error
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) ActivityRecorded(context.Context, models.Activity)  {}
func (NoopPublisher) LeaderboardRecomputed(context.Context, int, string) {}
func (NoopPublisher) Close() error                                       { return nil }
