// Package domain defines the monthly calendar aggregation contract.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// DaySummary is the compact per-day aggregate of a month view.
type DaySummary struct {
	Date          string `json:"date"` // YYYY-MM-DD, UTC
	AttendeeCount int    `json:"attendee_count"`
	HostCount     int    `json:"host_count"`
}

// DetailRow is one attendance entry of a day drill-down.
type DetailRow struct {
	UserID        snowflake.ID `json:"user_id"`
	DisplayName   string       `json:"display_name"`
	Location      string       `json:"location"`
	ExerciseLabel string       `json:"exercise_label"`
	IsHost        bool         `json:"is_host"`
	OccurredAt    time.Time    `json:"occurred_at"`
}

// MonthSummary pairs the gap-free day list with the drill-down map. Every
// Details key has a matching Days entry; days without events appear in Days
// with zero counts and no Details key.
type MonthSummary struct {
	Year    int                    `json:"year"`
	Month   int                    `json:"month"`
	Days    []DaySummary           `json:"days"`
	Details map[string][]DetailRow `json:"details"`
}

type AggregateRequest struct {
	CrewID snowflake.ID `json:"crew_id"`
	Year   int          `json:"year"`
	Month  int          `json:"month"`
}

type Service interface {
	AggregateMonth(ctx context.Context, req AggregateRequest) (MonthSummary, error)
}
