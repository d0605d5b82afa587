// Package domain contains persistence models for the location and exercise catalogs.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Location is a crew-scoped place where sessions happen. Attendance events
// snapshot the name at write time, so renames never rewrite history.
type Location struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CrewID    snowflake.ID `gorm:"not null;index" json:"crew_id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	IsActive  bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Location) TableName() string { return "locations" }

// ExerciseType labels the kind of activity of a session.
type ExerciseType struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Label string `gorm:"type:text;not null" json:"label"`
}

// TableName sets the database table name.
func (ExerciseType) TableName() string { return "exercise_types" }
