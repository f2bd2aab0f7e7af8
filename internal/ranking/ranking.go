// Package ranking aggregates activity totals per user and assigns leaderboard ranks.
package ranking

import (
	"sort"
	"strconv"

	"octofit-tracker/internal/models"
)

// RoundDistance rounds a distance in kilometers to 2 decimal places using the
// exact decimal value of km. Only exact halves round to even (0.125 -> 0.12);
// 1.115 is stored just below the half and gives 1.11, 4.445 just above and
// gives 4.45.
func RoundDistance(km float64) float64 {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(km, 'f', 2, 64), 64)
	return rounded
}

// Compute produces exactly one leaderboard entry per user, sorted by total
// calories descending. Ties keep the order in which users were supplied and
// ranks are sequential 1..N, so equal totals still get distinct ranks.
// Activities whose user id matches no supplied user are ignored.
func Compute(users []models.User, activities []models.Activity) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, len(users))
	if len(users) == 0 {
		return entries
	}

	byUser := make(map[int64]int, len(users))
	distance := make([]float64, len(users))
	for i, u := range users {
		entries[i] = models.LeaderboardEntry{
			ID:       u.ID,
			UserID:   u.ID,
			UserName: u.Name,
			TeamID:   u.TeamID,
		}
		// first occurrence wins if the caller passes duplicate ids
		if _, ok := byUser[u.ID]; !ok {
			byUser[u.ID] = i
		}
	}

	for _, a := range activities {
		i, ok := byUser[a.UserID]
		if !ok {
			continue
		}
		entries[i].TotalActivities++
		entries[i].TotalDuration += a.Duration
		entries[i].TotalCalories += a.Calories
		distance[i] += a.Distance
	}

	for i := range entries {
		entries[i].TotalDistance = RoundDistance(distance[i])
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalCalories > entries[j].TotalCalories
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
