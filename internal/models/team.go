package models

import "time"

// Team groups users; membership is by convention through User.TeamID
type Team struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required,gt=0"`
	Name        string    `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Description string    `gorm:"type:text;not null" json:"description" validate:"required"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at" validate:"required"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

func (t Team) PrimaryKey() int64 { return t.ID }

func (t Team) WithPrimaryKey(id int64) Team {
	t.ID = id
	return t
}

func (t Team) Field(column string) any {
	switch column {
	case "id":
		return t.ID
	case "name":
		return t.Name
	case "description":
		return t.Description
	case "created_at":
		return t.CreatedAt
	}
	return nil
}

func (t Team) String() string {
	return t.Name
}
