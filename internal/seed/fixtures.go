package seed

import (
	"time"

	"octofit-tracker/internal/models"
)

// Teams returns the hand-authored team fixtures
func Teams(now time.Time) []models.Team {
	return []models.Team{
		{ID: 1, Name: "Team Marvel", Description: "Earth's Mightiest Heroes", CreatedAt: now},
		{ID: 2, Name: "Team DC", Description: "Justice League United", CreatedAt: now},
	}
}

// Users returns the hand-authored hero fixtures: ids 1-5 on team 1, 6-10 on team 2
func Users(now time.Time) []models.User {
	heroes := []struct {
		name, email string
		team        int64
	}{
		{"Tony Stark", "ironman@marvel.com", 1},
		{"Steve Rogers", "captainamerica@marvel.com", 1},
		{"Natasha Romanoff", "blackwidow@marvel.com", 1},
		{"Thor Odinson", "thor@marvel.com", 1},
		{"Bruce Banner", "hulk@marvel.com", 1},
		{"Bruce Wayne", "batman@dc.com", 2},
		{"Clark Kent", "superman@dc.com", 2},
		{"Diana Prince", "wonderwoman@dc.com", 2},
		{"Barry Allen", "flash@dc.com", 2},
		{"Arthur Curry", "aquaman@dc.com", 2},
	}

	users := make([]models.User, len(heroes))
	for i, h := range heroes {
		users[i] = models.User{
			ID:        int64(i + 1),
			Name:      h.name,
			Email:     h.email,
			TeamID:    h.team,
			Role:      models.RoleHero,
			CreatedAt: now,
		}
	}
	return users
}

// Workouts returns the static workout catalog
func Workouts() []models.Workout {
	return []models.Workout{
		{
			ID: 1, Name: "Power Armor Maintenance",
			Type: models.WorkoutStrengthTraining, Difficulty: models.DifficultyAdvanced, Duration: 45,
			Description: "High-intensity strength training for enhanced performance",
			Exercises:   []string{"bench press", "deadlifts", "squats", "pull-ups"},
		},
		{
			ID: 2, Name: "Super Soldier Cardio",
			Type: models.WorkoutRunning, Difficulty: models.DifficultyAdvanced, Duration: 60,
			Description: "Endurance training for peak physical condition",
			Exercises:   []string{"interval running", "hill sprints", "long distance"},
		},
		{
			ID: 3, Name: "Spy Agility Training",
			Type: models.WorkoutMixed, Difficulty: models.DifficultyIntermediate, Duration: 50,
			Description: "Agility and flexibility training for stealth operations",
			Exercises:   []string{"parkour", "martial arts", "gymnastics", "yoga"},
		},
		{
			ID: 4, Name: "Asgardian Warrior Workout",
			Type: models.WorkoutStrengthTraining, Difficulty: models.DifficultyAdvanced, Duration: 90,
			Description: "Godlike strength training routine",
			Exercises:   []string{"hammer swings", "battle rope", "tire flips", "sledgehammer"},
		},
		{
			ID: 5, Name: "Mindful Hulk Control",
			Type: models.WorkoutYoga, Difficulty: models.DifficultyBeginner, Duration: 30,
			Description: "Meditation and breathing exercises for anger management",
			Exercises:   []string{"meditation", "breathing techniques", "gentle stretching"},
		},
		{
			ID: 6, Name: "Dark Knight Training",
			Type: models.WorkoutMixed, Difficulty: models.DifficultyAdvanced, Duration: 120,
			Description: "Complete combat and detective training",
			Exercises:   []string{"martial arts", "detective work", "stealth training", "gadget practice"},
		},
		{
			ID: 7, Name: "Kryptonian Strength",
			Type: models.WorkoutStrengthTraining, Difficulty: models.DifficultyAdvanced, Duration: 60,
			Description: "Ultimate strength and power training",
			Exercises:   []string{"super squats", "flying practice", "laser focus training"},
		},
		{
			ID: 8, Name: "Amazon Warrior Training",
			Type: models.WorkoutMixed, Difficulty: models.DifficultyAdvanced, Duration: 75,
			Description: "Warrior training from Themyscira",
			Exercises:   []string{"sword training", "shield work", "combat techniques", "endurance"},
		},
		{
			ID: 9, Name: "Speed Force Sprint",
			Type: models.WorkoutRunning, Difficulty: models.DifficultyAdvanced, Duration: 30,
			Description: "Lightning-fast speed training",
			Exercises:   []string{"speed intervals", "reaction drills", "agility ladder"},
		},
		{
			ID: 10, Name: "Atlantean Swimming",
			Type: models.WorkoutSwimming, Difficulty: models.DifficultyIntermediate, Duration: 45,
			Description: "Underwater endurance and strength",
			Exercises:   []string{"freestyle", "underwater swimming", "aquatic strength training"},
		},
	}
}
