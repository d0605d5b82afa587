// Package domain defines the monthly ranking contract.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Metric selects what a ranking counts.
type Metric string

const (
	// MetricAttendance counts every event of a member.
	MetricAttendance Metric = "attendance"
	// MetricHosting counts only events the member hosted.
	MetricHosting Metric = "hosting"
)

// PlaceholderName is rendered when a participant has no roster display name.
const PlaceholderName = "N/A"

// RankEntry is one row of a computed ranking. Never persisted.
type RankEntry struct {
	UserID           snowflake.ID `json:"user_id"`
	DisplayName      string       `json:"display_name"`
	AvatarURL        *string      `json:"avatar_url"`
	Value            int          `json:"value"`
	Rank             int          `json:"rank"`
	IsRequestingUser bool         `json:"is_requesting_user"`
}

type ComputeRequest struct {
	CrewID           snowflake.ID `json:"crew_id"`
	Year             int          `json:"year"`
	Month            int          `json:"month"`
	Metric           Metric       `json:"metric"`
	RequestingUserID snowflake.ID `json:"requesting_user_id"`
}

type Service interface {
	ComputeRanking(ctx context.Context, req ComputeRequest) ([]RankEntry, error)
}

var ErrInvalidMetric = errors.New("invalid_metric")
