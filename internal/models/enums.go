package models

// Role is the label attached to a user
type Role string

const (
	RoleHero   Role = "hero"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// ActivityType is the kind of a logged activity
type ActivityType string

const (
	ActivityRunning          ActivityType = "running"
	ActivityCycling          ActivityType = "cycling"
	ActivitySwimming         ActivityType = "swimming"
	ActivityStrengthTraining ActivityType = "strength_training"
	ActivityYoga             ActivityType = "yoga"
)

// WorkoutType is the discipline of a catalog workout
type WorkoutType string

const (
	WorkoutRunning          WorkoutType = "running"
	WorkoutSwimming         WorkoutType = "swimming"
	WorkoutStrengthTraining WorkoutType = "strength_training"
	WorkoutYoga             WorkoutType = "yoga"
	WorkoutMixed            WorkoutType = "mixed"
)

// Difficulty grades a catalog workout
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ActivityTypes lists every valid activity type in declaration order
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityRunning,
		ActivityCycling,
		ActivitySwimming,
		ActivityStrengthTraining,
		ActivityYoga,
	}
}

// IsValid checks if the Role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleHero, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// IsValid checks if the ActivityType is valid
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityRunning, ActivityCycling, ActivitySwimming, ActivityStrengthTraining, ActivityYoga:
		return true
	}
	return false
}

// IsValid checks if the WorkoutType is valid
func (t WorkoutType) IsValid() bool {
	switch t {
	case WorkoutRunning, WorkoutSwimming, WorkoutStrengthTraining, WorkoutYoga, WorkoutMixed:
		return true
	}
	return false
}

// IsValid checks if the Difficulty is valid
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
