package seed

import (
	"math/rand"
	"time"

	"octofit-tracker/internal/models"
	"octofit-tracker/internal/ranking"
)

// Activity value ranges, all inclusive
const (
	MinActivitiesPerUser = 5
	MaxActivitiesPerUser = 10
	MinDuration          = 15
	MaxDuration          = 120
	MinDistance          = 1.0
	MaxDistance          = 20.0
	MinCalories          = 100
	MaxCalories          = 800
	MaxAgeDays           = 30
)

// Fabricator generates random activities. It is not safe for concurrent use
// because *rand.Rand is not.
type Fabricator struct {
	rng   *rand.Rand
	now   func() time.Time
	types []models.ActivityType
}

// NewFabricator creates a Fabricator drawing from rng and dating activities
// relative to now()
func NewFabricator(rng *rand.Rand, now func() time.Time) *Fabricator {
	return &Fabricator{
		rng:   rng,
		now:   now,
		types: models.ActivityTypes(),
	}
}

// Activity fabricates one activity with the given id for user
func (f *Fabricator) Activity(id int64, user models.User) models.Activity {
	days := f.rng.Intn(MaxAgeDays + 1)
	return models.Activity{
		ID:       id,
		UserID:   user.ID,
		Type:     f.types[f.rng.Intn(len(f.types))],
		Duration: MinDuration + f.rng.Intn(MaxDuration-MinDuration+1),
		Distance: ranking.RoundDistance(MinDistance + f.rng.Float64()*(MaxDistance-MinDistance)),
		Calories: MinCalories + f.rng.Intn(MaxCalories-MinCalories+1),
		Date:     f.now().AddDate(0, 0, -days),
		Notes:    user.Name + " training session",
	}
}

// Activities fabricates 5-10 activities per user with ids sequential from firstID
func (f *Fabricator) Activities(users []models.User, firstID int64) []models.Activity {
	activities := make([]models.Activity, 0, len(users)*MaxActivitiesPerUser)
	id := firstID
	for _, u := range users {
		n := MinActivitiesPerUser + f.rng.Intn(MaxActivitiesPerUser-MinActivitiesPerUser+1)
		for i := 0; i < n; i++ {
			activities = append(activities, f.Activity(id, u))
			id++
		}
	}
	return activities
}
