package repository

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/models"
)

// FilterKind tells how a filter value from a query string is interpreted
type FilterKind int

const (
	FilterString FilterKind = iota
	FilterInt
)

// UniqueField declares a column, besides id, whose values may not repeat
type UniqueField[T any] struct {
	Column string
	Value  func(T) string
}

// Schema describes one kind to the store implementations
type Schema[T models.Record[T]] struct {
	Entity  string
	Order   string // SQL ORDER BY used by the postgres store
	Less    func(a, b T) bool
	Filters map[string]FilterKind
	Search  []string
	Unique  []UniqueField[T]
}

// TeamSchema describes teams: ordered by id, searchable by name
func TeamSchema() Schema[models.Team] {
	return Schema[models.Team]{
		Entity: "team",
		Order:  "id ASC",
		Less:   func(a, b models.Team) bool { return a.ID < b.ID },
		Search: []string{"name"},
	}
}

// UserSchema describes users; email is unique
func UserSchema() Schema[models.User] {
	return Schema[models.User]{
		Entity: "user",
		Order:  "id ASC",
		Less:   func(a, b models.User) bool { return a.ID < b.ID },
		Filters: map[string]FilterKind{
			"role":    FilterString,
			"team_id": FilterInt,
		},
		Search: []string{"name", "email"},
		Unique: []UniqueField[models.User]{
			{Column: "email", Value: func(u models.User) string { return u.Email }},
		},
	}
}

// ActivitySchema describes activities: newest first
func ActivitySchema() Schema[models.Activity] {
	return Schema[models.Activity]{
		Entity: "activity",
		Order:  `"date" DESC, id ASC`,
		Less: func(a, b models.Activity) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.After(b.Date)
			}
			return a.ID < b.ID
		},
		Filters: map[string]FilterKind{
			"type":    FilterString,
			"user_id": FilterInt,
		},
		Search: []string{"type", "notes"},
	}
}

// LeaderboardSchema describes leaderboard entries: best rank first
func LeaderboardSchema() Schema[models.LeaderboardEntry] {
	return Schema[models.LeaderboardEntry]{
		Entity: "leaderboard entry",
		Order:  `"rank" ASC, id ASC`,
		Less: func(a, b models.LeaderboardEntry) bool {
			if a.Rank != b.Rank {
				return a.Rank < b.Rank
			}
			return a.ID < b.ID
		},
		Filters: map[string]FilterKind{
			"team_id": FilterInt,
		},
		Search: []string{"user_name"},
	}
}

// WorkoutSchema describes the workout catalog
func WorkoutSchema() Schema[models.Workout] {
	return Schema[models.Workout]{
		Entity: "workout",
		Order:  "id ASC",
		Less:   func(a, b models.Workout) bool { return a.ID < b.ID },
		Filters: map[string]FilterKind{
			"type":       FilterString,
			"difficulty": FilterString,
		},
		Search: []string{"name", "description"},
	}
}

// filterValues checks filters against the declared columns and converts
// integer filters. Unknown columns are rejected rather than ignored.
func (s Schema[T]) filterValues(filters map[string]string) (map[string]any, error) {
	values := make(map[string]any, len(filters))
	for column, raw := range filters {
		kind, ok := s.Filters[column]
		if !ok {
			return nil, apperrors.NewValidationError(column, fmt.Sprintf("%s cannot be filtered by %s", s.Entity, column))
		}
		switch kind {
		case FilterInt:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, apperrors.NewValidationError(column, "must be an integer")
			}
			values[column] = n
		default:
			values[column] = raw
		}
	}
	return values, nil
}

func (s Schema[T]) duplicateID(id int64) error {
	return apperrors.NewAlreadyExistsError(s.Entity, fmt.Sprintf("with id %d", id))
}

func (s Schema[T]) duplicateField(column string) error {
	return apperrors.NewUniqueFieldError(s.Entity, column)
}

func (s Schema[T]) notFound(id int64) error {
	return apperrors.NewNotFoundError(s.Entity, id)
}
