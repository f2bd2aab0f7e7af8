package models

import "time"

// User is a tracked athlete. Email is unique across all users; TeamID is not
// checked against the teams collection.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required,gt=0"`
	Name      string    `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Email     string    `gorm:"size:254;not null;uniqueIndex:idx_users_email" json:"email" validate:"required,email,max=254"`
	TeamID    int64     `gorm:"not null;index" json:"team_id" validate:"gte=0"`
	Role      Role      `gorm:"size:50;not null" json:"role" validate:"required,enum"`
	CreatedAt time.Time `gorm:"not null" json:"created_at" validate:"required"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u User) PrimaryKey() int64 { return u.ID }

func (u User) WithPrimaryKey(id int64) User {
	u.ID = id
	return u
}

func (u User) Field(column string) any {
	switch column {
	case "id":
		return u.ID
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "team_id":
		return u.TeamID
	case "role":
		return u.Role
	case "created_at":
		return u.CreatedAt
	}
	return nil
}

func (u User) String() string {
	return u.Name
}
