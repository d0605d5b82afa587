// Package domain contains persistence models for recorded attendance.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AttendanceEvent stores one recorded participation. Display fields of the
// participant live on the roster; location and exercise type are snapshotted
// here at write time. OccurredOn is the UTC calendar day of OccurredAt and
// backs the one-event-per-member-per-day constraint.
type AttendanceEvent struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	CrewID         snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_attendance_crew_user_day,priority:1" json:"crew_id"`
	UserID         snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_attendance_crew_user_day,priority:2" json:"user_id"`
	OccurredAt     time.Time         `gorm:"not null" json:"occurred_at"`
	OccurredOn     string            `gorm:"type:text;not null;uniqueIndex:ux_attendance_crew_user_day,priority:3" json:"occurred_on"`
	Location       string            `gorm:"type:text;not null" json:"location"` // snapshot
	ExerciseTypeID int               `gorm:"not null" json:"exercise_type_id"`
	IsHost         bool              `gorm:"not null;default:false" json:"is_host"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AttendanceEvent) TableName() string { return "attendance_events" }

// DayFormat is the layout of OccurredOn and of calendar detail keys.
const DayFormat = "2006-01-02"

// DayOf returns the UTC calendar day of t in DayFormat.
func DayOf(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// EventRow is an attendance event joined with the participant's roster
// display fields, as the read queries return it.
type EventRow struct {
	EventID        snowflake.ID `gorm:"column:id"`
	UserID         snowflake.ID `gorm:"column:user_id"`
	DisplayName    string       `gorm:"column:display_name"`
	AvatarURL      *string      `gorm:"column:avatar_url"`
	OccurredAt     time.Time    `gorm:"column:occurred_at"`
	Location       string       `gorm:"column:location"`
	ExerciseTypeID int          `gorm:"column:exercise_type_id"`
	IsHost         bool         `gorm:"column:is_host"`
}
