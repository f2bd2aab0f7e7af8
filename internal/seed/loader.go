// Package seed resets the store and repopulates it with demo data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"octofit-tracker/internal/logger"
	"octofit-tracker/internal/ranking"
	"octofit-tracker/internal/repository"
)

// Summary counts what a run inserted
type Summary struct {
	Teams              int
	Users              int
	Activities         int
	LeaderboardEntries int
	Workouts           int
}

// Loader runs the reset-and-repopulate sequence. Every step is a hard
// precondition for the next; the first failure aborts the run with no cleanup,
// which is safe because the next run starts by clearing everything.
type Loader struct {
	store     *repository.Store
	publisher repository.SnapshotPublisher
	rng       *rand.Rand
	now       func() time.Time
	log       *logger.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithClock overrides the time source used for created_at and activity dates
func WithClock(now func() time.Time) Option {
	return func(l *Loader) { l.now = now }
}

// WithLogger overrides the progress logger
func WithLogger(log *logger.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// NewLoader creates a Loader. publisher may be nil, in which case the fresh
// leaderboard is only written to the store.
func NewLoader(store *repository.Store, publisher repository.SnapshotPublisher, rng *rand.Rand, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		publisher: publisher,
		rng:       rng,
		now:       time.Now,
		log:       logger.Component("seed"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the full sequence
func (l *Loader) Run(ctx context.Context) (*Summary, error) {
	now := l.now()
	summary := &Summary{}

	l.log.Info("Clearing existing data...")
	if err := l.store.ClearAll(ctx); err != nil {
		return nil, fmt.Errorf("clear collections: %w", err)
	}

	if err := l.store.EnsureUserEmailIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure email index: %w", err)
	}
	l.log.Info("Created unique index on email field")

	teams := Teams(now)
	if err := l.store.Teams.InsertMany(ctx, teams); err != nil {
		return nil, fmt.Errorf("insert teams: %w", err)
	}
	summary.Teams = len(teams)
	l.log.WithField("count", len(teams)).Info("Inserted teams")

	users := Users(now)
	if err := l.store.Users.InsertMany(ctx, users); err != nil {
		return nil, fmt.Errorf("insert users: %w", err)
	}
	summary.Users = len(users)
	l.log.WithField("count", len(users)).Info("Inserted users")

	activities := NewFabricator(l.rng, func() time.Time { return now }).Activities(users, 1)
	if err := l.store.Activities.InsertMany(ctx, activities); err != nil {
		return nil, fmt.Errorf("insert activities: %w", err)
	}
	summary.Activities = len(activities)
	l.log.WithField("count", len(activities)).Info("Inserted activities")

	entries := ranking.Compute(users, activities)
	if err := l.store.Leaderboard.InsertMany(ctx, entries); err != nil {
		return nil, fmt.Errorf("insert leaderboard: %w", err)
	}
	summary.LeaderboardEntries = len(entries)
	l.log.WithField("count", len(entries)).Info("Inserted leaderboard entries")

	workouts := Workouts()
	if err := l.store.Workouts.InsertMany(ctx, workouts); err != nil {
		return nil, fmt.Errorf("insert workouts: %w", err)
	}
	summary.Workouts = len(workouts)
	l.log.WithField("count", len(workouts)).Info("Inserted workouts")

	if l.publisher != nil {
		if err := l.publisher.Publish(ctx, entries); err != nil {
			return nil, fmt.Errorf("publish leaderboard snapshot: %w", err)
		}
	}

	return summary, nil
}
