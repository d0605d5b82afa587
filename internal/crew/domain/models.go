// Package domain contains persistence models for crews and their rosters.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Crew represents a tenant whose members track attendance together.
type Crew struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"type:text;not null" json:"name"`
	TimezoneName string            `gorm:"column:timezone_name" json:"timezone_name"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb" json:"metadata"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Crew) TableName() string { return "crews" }

// Member represents membership of a user in a crew.
type Member struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CrewID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_crew_user,priority:1" json:"crew_id"`
	UserID      snowflake.ID `gorm:"not null;index;uniqueIndex:ux_crew_user,priority:2" json:"user_id"`
	DisplayName string       `gorm:"type:text;not null" json:"display_name"`
	AvatarURL   *string      `gorm:"type:text" json:"avatar_url"`
	Role        string       `gorm:"type:text;not null" json:"role"`
	IsActive    bool         `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "members" }
