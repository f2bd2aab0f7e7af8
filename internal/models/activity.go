package models

import (
	"fmt"
	"time"
)

// Activity is a single logged session. Duration is in minutes, distance in km.
type Activity struct {
	ID       int64        `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required,gt=0"`
	UserID   int64        `gorm:"not null;index" json:"user_id" validate:"required,gt=0"`
	Type     ActivityType `gorm:"column:type;size:100;not null" json:"type" validate:"required,enum"`
	Duration int          `gorm:"not null" json:"duration" validate:"required,gt=0"`
	Distance float64      `gorm:"not null" json:"distance" validate:"gte=0"`
	Calories int          `gorm:"not null" json:"calories" validate:"gte=0"`
	Date     time.Time    `gorm:"not null;index" json:"date" validate:"required"`
	Notes    string       `gorm:"type:text;not null" json:"notes" validate:"required"`
}

// TableName specifies the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

func (a Activity) PrimaryKey() int64 { return a.ID }

func (a Activity) WithPrimaryKey(id int64) Activity {
	a.ID = id
	return a
}

func (a Activity) Field(column string) any {
	switch column {
	case "id":
		return a.ID
	case "user_id":
		return a.UserID
	case "type":
		return a.Type
	case "duration":
		return a.Duration
	case "distance":
		return a.Distance
	case "calories":
		return a.Calories
	case "date":
		return a.Date
	case "notes":
		return a.Notes
	}
	return nil
}

func (a Activity) String() string {
	return fmt.Sprintf("%s - %dmin", a.Type, a.Duration)
}
