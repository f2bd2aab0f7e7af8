package models

import "fmt"

// LeaderboardEntry is a denormalized per-user snapshot produced by the ranking
// engine. It is regenerated wholesale, never updated incrementally.
type LeaderboardEntry struct {
	ID              int64   `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required,gt=0"`
	UserID          int64   `gorm:"not null;index" json:"user_id" validate:"required,gt=0"`
	UserName        string  `gorm:"size:200;not null" json:"user_name" validate:"required,max=200"`
	TeamID          int64   `gorm:"not null;index" json:"team_id" validate:"gte=0"`
	TotalActivities int     `gorm:"not null" json:"total_activities" validate:"gte=0"`
	TotalDuration   int     `gorm:"not null" json:"total_duration" validate:"gte=0"`
	TotalDistance   float64 `gorm:"not null" json:"total_distance" validate:"gte=0"`
	TotalCalories   int     `gorm:"not null" json:"total_calories" validate:"gte=0"`
	Rank            int     `gorm:"not null;index" json:"rank" validate:"gte=0"`
}

// TableName specifies the table name for GORM
func (LeaderboardEntry) TableName() string {
	return "leaderboard"
}

func (e LeaderboardEntry) PrimaryKey() int64 { return e.ID }

func (e LeaderboardEntry) WithPrimaryKey(id int64) LeaderboardEntry {
	e.ID = id
	return e
}

func (e LeaderboardEntry) Field(column string) any {
	switch column {
	case "id":
		return e.ID
	case "user_id":
		return e.UserID
	case "user_name":
		return e.UserName
	case "team_id":
		return e.TeamID
	case "total_activities":
		return e.TotalActivities
	case "total_duration":
		return e.TotalDuration
	case "total_distance":
		return e.TotalDistance
	case "total_calories":
		return e.TotalCalories
	case "rank":
		return e.Rank
	}
	return nil
}

func (e LeaderboardEntry) String() string {
	return fmt.Sprintf("%d. %s", e.Rank, e.UserName)
}
