package repository

import (
	"context"
	"fmt"

	"octofit-tracker/internal/models"
)

// ListOptions narrows a List call. Filters are equality matches on declared
// columns; Search is a case-insensitive substring match over the declared text
// columns of the kind.
type ListOptions struct {
	Filters map[string]string
	Search  string
}

// Collection is the data-access contract for one record kind. Ids are always
// supplied by the caller.
type Collection[T models.Record[T]] interface {
	// Clear removes every record; clearing an empty collection succeeds
	Clear(ctx context.Context) error
	// InsertMany inserts a batch; an empty batch is a no-op
	InsertMany(ctx context.Context, records []T) error
	Create(ctx context.Context, record T) error
	Get(ctx context.Context, id int64) (T, error)
	List(ctx context.Context, opts ListOptions) ([]T, error)
	// Update replaces the full record stored under id
	Update(ctx context.Context, id int64, record T) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type backend interface {
	ensureUserEmailIndex(ctx context.Context) error
	ping(ctx context.Context) error
	close() error
}

// Store groups the five collections over a single backend
type Store struct {
	Teams       Collection[models.Team]
	Users       Collection[models.User]
	Activities  Collection[models.Activity]
	Leaderboard Collection[models.LeaderboardEntry]
	Workouts    Collection[models.Workout]

	backend backend
}

// ClearAll empties every collection. Order matters only for readability; there
// is no referential integrity between kinds.
func (s *Store) ClearAll(ctx context.Context) error {
	clears := []struct {
		name  string
		clear func(context.Context) error
	}{
		{"leaderboard", s.Leaderboard.Clear},
		{"activities", s.Activities.Clear},
		{"workouts", s.Workouts.Clear},
		{"users", s.Users.Clear},
		{"teams", s.Teams.Clear},
	}
	for _, c := range clears {
		if err := c.clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", c.name, err)
		}
	}
	return nil
}

// EnsureUserEmailIndex (re-)establishes uniqueness of User.email
func (s *Store) EnsureUserEmailIndex(ctx context.Context) error {
	return s.backend.ensureUserEmailIndex(ctx)
}

// Ping checks if the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.ping(ctx)
}

// Close releases the backend connection
func (s *Store) Close() error {
	return s.backend.close()
}
