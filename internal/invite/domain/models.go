package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// InviteCode is a short shareable code granting entry to a crew. Codes are
// unique across all crews forever, deactivated codes included; deactivation
// is soft so redeemed history survives.
type InviteCode struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Code        string       `json:"code" gorm:"size:7;uniqueIndex:ux_invite_code"`
	CrewID      snowflake.ID `json:"crew_id" gorm:"index"`
	IsActive    bool         `json:"is_active"`
	CreatedBy   snowflake.ID `json:"created_by"`
	Description *string      `json:"description,omitempty"`
	UsedCount   int          `json:"used_count"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (InviteCode) TableName() string {
	return "invite_codes"
}
