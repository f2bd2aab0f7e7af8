package repository

import (
	"context"
	"time"

	apperrors "octofit-tracker/internal/errors"
	"octofit-tracker/internal/models"

	"github.com/stretchr/testify/suite"
)

// StoreContractSuite runs the same behaviour checks against any Store
type StoreContractSuite struct {
	suite.Suite
	newStore func() *Store
	store    *Store
	ctx      context.Context
}

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// SetupTest gives every test an empty store
func (s *StoreContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.newStore()
	s.Require().NoError(s.store.ClearAll(s.ctx))
	s.Require().NoError(s.store.EnsureUserEmailIndex(s.ctx))
}

func (s *StoreContractSuite) user(id int64, email string, team int64) models.User {
	return models.User{
		ID:        id,
		Name:      "User " + email,
		Email:     email,
		TeamID:    team,
		Role:      models.RoleHero,
		CreatedAt: baseTime,
	}
}

func (s *StoreContractSuite) TestClearIsIdempotent() {
	s.NoError(s.store.Teams.Clear(s.ctx))
	s.NoError(s.store.Teams.Clear(s.ctx))

	n, err := s.store.Teams.Count(s.ctx)
	s.NoError(err)
	s.Zero(n)
}

func (s *StoreContractSuite) TestInsertManyEmptyBatch() {
	s.NoError(s.store.Workouts.InsertMany(s.ctx, nil))
	s.NoError(s.store.Workouts.InsertMany(s.ctx, []models.Workout{}))
}

func (s *StoreContractSuite) TestCreateAndGet() {
	team := models.Team{ID: 1, Name: "Team Marvel", Description: "Heroes", CreatedAt: baseTime}
	s.Require().NoError(s.store.Teams.Create(s.ctx, team))

	got, err := s.store.Teams.Get(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(team.Name, got.Name)
	s.Equal(team.Description, got.Description)
	s.True(team.CreatedAt.Equal(got.CreatedAt))
}

func (s *StoreContractSuite) TestGetMissing() {
	_, err := s.store.Users.Get(s.ctx, 42)
	s.Error(err)
	s.True(apperrors.IsNotFound(err))
	s.ErrorIs(err, apperrors.ErrUserNotFound)
}

func (s *StoreContractSuite) TestDuplicateID() {
	s.Require().NoError(s.store.Users.Create(s.ctx, s.user(1, "a@example.com", 1)))

	err := s.store.Users.Create(s.ctx, s.user(1, "b@example.com", 1))
	s.True(apperrors.IsAlreadyExists(err), "got %v", err)
	s.NotErrorIs(err, apperrors.ErrUserEmailExists)
}

func (s *StoreContractSuite) TestDuplicateEmail() {
	s.Require().NoError(s.store.Users.Create(s.ctx, s.user(1, "a@example.com", 1)))

	err := s.store.Users.Create(s.ctx, s.user(2, "a@example.com", 2))
	s.True(apperrors.IsAlreadyExists(err), "got %v", err)
	s.ErrorIs(err, apperrors.ErrUserEmailExists)

	n, err := s.store.Users.Count(s.ctx)
	s.NoError(err)
	s.Equal(int64(1), n)
}

func (s *StoreContractSuite) TestInsertManyRejectsWholeBatch() {
	s.Require().NoError(s.store.Users.Create(s.ctx, s.user(1, "taken@example.com", 1)))

	err := s.store.Users.InsertMany(s.ctx, []models.User{
		s.user(2, "fresh@example.com", 1),
		s.user(3, "taken@example.com", 1),
	})
	s.True(apperrors.IsAlreadyExists(err), "got %v", err)

	_, err = s.store.Users.Get(s.ctx, 2)
	s.True(apperrors.IsNotFound(err), "failed batch must not be partially applied")
}

func (s *StoreContractSuite) TestUpdateReplacesRecord() {
	s.Require().NoError(s.store.Users.Create(s.ctx, s.user(1, "a@example.com", 1)))

	replacement := s.user(99, "new@example.com", 2)
	replacement.Name = "Renamed"
	s.Require().NoError(s.store.Users.Update(s.ctx, 1, replacement))

	got, err := s.store.Users.Get(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(int64(1), got.ID)
	s.Equal("Renamed", got.Name)
	s.Equal("new@example.com", got.Email)
	s.Equal(int64(2), got.TeamID)

	_, err = s.store.Users.Get(s.ctx, 99)
	s.True(apperrors.IsNotFound(err))
}

func (s *StoreContractSuite) TestUpdateMissing() {
	err := s.store.Teams.Update(s.ctx, 7, models.Team{ID: 7, Name: "Ghost", CreatedAt: baseTime})
	s.True(apperrors.IsNotFound(err), "got %v", err)
}

func (s *StoreContractSuite) TestUpdateEmailCollision() {
	s.Require().NoError(s.store.Users.InsertMany(s.ctx, []models.User{
		s.user(1, "a@example.com", 1),
		s.user(2, "b@example.com", 1),
	}))

	err := s.store.Users.Update(s.ctx, 2, s.user(2, "a@example.com", 1))
	s.True(apperrors.IsAlreadyExists(err), "got %v", err)

	// keeping its own email is not a collision
	s.NoError(s.store.Users.Update(s.ctx, 1, s.user(1, "a@example.com", 2)))
}

func (s *StoreContractSuite) TestDelete() {
	s.Require().NoError(s.store.Teams.Create(s.ctx, models.Team{ID: 1, Name: "Team DC", CreatedAt: baseTime}))

	s.NoError(s.store.Teams.Delete(s.ctx, 1))
	err := s.store.Teams.Delete(s.ctx, 1)
	s.True(apperrors.IsNotFound(err), "got %v", err)
}

func (s *StoreContractSuite) TestListEmpty() {
	rows, err := s.store.Activities.List(s.ctx, ListOptions{})
	s.Require().NoError(err)
	s.NotNil(rows)
	s.Empty(rows)
}

func (s *StoreContractSuite) TestListOrdering() {
	s.Require().NoError(s.store.Activities.InsertMany(s.ctx, []models.Activity{
		{ID: 1, UserID: 1, Type: models.ActivityRunning, Duration: 30, Date: baseTime.Add(-48 * time.Hour)},
		{ID: 2, UserID: 1, Type: models.ActivityYoga, Duration: 30, Date: baseTime},
		{ID: 3, UserID: 2, Type: models.ActivityYoga, Duration: 30, Date: baseTime},
	}))

	rows, err := s.store.Activities.List(s.ctx, ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal([]int64{2, 3, 1}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})

	s.Require().NoError(s.store.Leaderboard.InsertMany(s.ctx, []models.LeaderboardEntry{
		{ID: 5, UserID: 5, UserName: "E", Rank: 2},
		{ID: 6, UserID: 6, UserName: "F", Rank: 1},
	}))
	entries, err := s.store.Leaderboard.List(s.ctx, ListOptions{})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(int64(6), entries[0].UserID)
}

func (s *StoreContractSuite) TestListFiltersAndSearch() {
	s.Require().NoError(s.store.Users.InsertMany(s.ctx, []models.User{
		s.user(1, "ironman@marvel.com", 1),
		s.user(2, "batman@dc.com", 2),
		s.user(3, "superman@dc.com", 2),
	}))

	dc, err := s.store.Users.List(s.ctx, ListOptions{Filters: map[string]string{"team_id": "2"}})
	s.Require().NoError(err)
	s.Len(dc, 2)

	bats, err := s.store.Users.List(s.ctx, ListOptions{Search: "BAT"})
	s.Require().NoError(err)
	s.Require().Len(bats, 1)
	s.Equal(int64(2), bats[0].ID)

	both, err := s.store.Users.List(s.ctx, ListOptions{
		Filters: map[string]string{"team_id": "2", "role": "hero"},
		Search:  "man",
	})
	s.Require().NoError(err)
	s.Len(both, 2)

	literal, err := s.store.Users.List(s.ctx, ListOptions{Search: "%"})
	s.Require().NoError(err)
	s.Empty(literal)
}

func (s *StoreContractSuite) TestListRejectsUnknownFilter() {
	_, err := s.store.Users.List(s.ctx, ListOptions{Filters: map[string]string{"password": "x"}})
	s.True(apperrors.IsValidation(err), "got %v", err)

	_, err = s.store.Users.List(s.ctx, ListOptions{Filters: map[string]string{"team_id": "two"}})
	s.True(apperrors.IsValidation(err), "got %v", err)
}

func (s *StoreContractSuite) TestWorkoutExercisesRoundTrip() {
	w := models.Workout{
		ID: 1, Name: "Speed Force Sprint", Type: models.WorkoutRunning,
		Difficulty: models.DifficultyAdvanced, Duration: 30,
		Exercises: []string{"Sprint intervals", "Reaction drills"},
	}
	s.Require().NoError(s.store.Workouts.Create(s.ctx, w))

	got, err := s.store.Workouts.Get(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(w.Exercises, got.Exercises)
}
