package models

// Workout is a static catalog entry, independent of other kinds
type Workout struct {
	ID          int64       `gorm:"primaryKey;autoIncrement:false" json:"id" validate:"required,gt=0"`
	Name        string      `gorm:"size:200;not null" json:"name" validate:"required,max=200"`
	Type        WorkoutType `gorm:"column:type;size:100;not null" json:"type" validate:"required,enum"`
	Difficulty  Difficulty  `gorm:"size:50;not null" json:"difficulty" validate:"required,enum"`
	Duration    int         `gorm:"not null" json:"duration" validate:"required,gt=0"`
	Description string      `gorm:"type:text;not null" json:"description" validate:"required"`
	Exercises   []string    `gorm:"serializer:json;type:jsonb;not null" json:"exercises" validate:"required,dive,required"`
}

// TableName specifies the table name for GORM
func (Workout) TableName() string {
	return "workouts"
}

func (w Workout) PrimaryKey() int64 { return w.ID }

func (w Workout) WithPrimaryKey(id int64) Workout {
	w.ID = id
	return w
}

func (w Workout) Field(column string) any {
	switch column {
	case "id":
		return w.ID
	case "name":
		return w.Name
	case "type":
		return w.Type
	case "difficulty":
		return w.Difficulty
	case "duration":
		return w.Duration
	case "description":
		return w.Description
	case "exercises":
		return w.Exercises
	}
	return nil
}

func (w Workout) String() string {
	return w.Name
}
