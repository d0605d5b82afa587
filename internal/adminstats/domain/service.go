// Package domain defines the crew KPI dashboard contract.
package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Mode selects the access pattern used to assemble the stats. Both modes
// return identical numbers for identical data.
type Mode string

const (
	// ModeNaive issues one fetch per metric and regroups in process.
	ModeNaive Mode = "naive"
	// ModeOptimized pulls the month once and derives every month metric
	// from a single in-memory pass.
	ModeOptimized Mode = "optimized"
)

// Stats is the crew-level KPI snapshot. All rates are whole percents.
type Stats struct {
	TotalActiveMembers int `json:"total_active_members"`

	// TodayAttendees and WeekAttendees count unique users relative to the
	// reporting clock, independent of the requested month.
	TodayAttendees int `json:"today_attendees"`
	WeekAttendees  int `json:"week_attendees"`

	MonthEventCount int `json:"month_event_count"`

	// WeekdayRates holds the share of active members with at least one
	// event on that weekday this month, indexed Sunday through Saturday.
	WeekdayRates [7]int `json:"weekday_rates"`

	// LocationRates maps location name to its share of the month's events.
	LocationRates map[string]int `json:"location_rates"`

	// AttendanceRate is the share of active members with at least one
	// event this month; GhostRate is its complement.
	AttendanceRate int `json:"attendance_rate"`
	GhostRate      int `json:"ghost_rate"`
}

type ComputeRequest struct {
	CrewID snowflake.ID `json:"crew_id"`

	// Year and Month default to the current month when both are zero.
	Year  int  `json:"year"`
	Month int  `json:"month"`
	Mode  Mode `json:"mode"`
}

type Service interface {
	ComputeStats(ctx context.Context, req ComputeRequest) (Stats, error)
}

var ErrInvalidMode = errors.New("invalid_stats_mode")
