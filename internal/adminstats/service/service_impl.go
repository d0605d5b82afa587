package service

import (
	"context"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	statsdomain "github.com/fitcrew/rollcall/internal/adminstats/domain"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	"github.com/fitcrew/rollcall/internal/clock"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log           *zap.Logger
	Clock         clock.Clock
	CrewSvc       crewdomain.Service
	AttendanceSvc attendancedomain.Service
}

type Service struct {
	log   *zap.Logger
	clock clock.Clock

	crewsvc       crewdomain.Service
	attendancesvc attendancedomain.Service
}

func NewService(p ServiceParam) statsdomain.Service {
	return &Service{
		log:   p.Log.Named("adminstats.service"),
		clock: p.Clock,

		crewsvc:       p.CrewSvc,
		attendancesvc: p.AttendanceSvc,
	}
}

func (s *Service) ComputeStats(ctx context.Context, req statsdomain.ComputeRequest) (statsdomain.Stats, error) {
	now := s.clock.Now().UTC()

	year, month := req.Year, req.Month
	if year == 0 && month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	if err := attendancedomain.ValidateYearMonth(year, month); err != nil {
		return statsdomain.Stats{}, err
	}

	if _, err := s.crewsvc.GetByID(ctx, req.CrewID); err != nil {
		return statsdomain.Stats{}, err
	}

	mode := req.Mode
	if mode == "" {
		mode = statsdomain.ModeNaive
	}

	switch mode {
	case statsdomain.ModeNaive:
		return s.computeNaive(ctx, req.CrewID, year, month, now)
	case statsdomain.ModeOptimized:
		return s.computeOptimized(ctx, req.CrewID, year, month, now)
	default:
		return statsdomain.Stats{}, statsdomain.ErrInvalidMode
	}
}

// computeNaive fetches the window once per metric and regroups each time.
// Slow on purpose; kept as the behavioral reference for the optimized path.
func (s *Service) computeNaive(ctx context.Context, crewID snowflake.ID, year, month int, now time.Time) (statsdomain.Stats, error) {
	members, err := s.crewsvc.ActiveMembers(ctx, crewID)
	if err != nil {
		return statsdomain.Stats{}, err
	}
	total := len(members)

	dayStart, dayEnd := DayWindow(now)
	todayRows, err := s.attendancesvc.RangeRows(ctx, crewID, dayStart, dayEnd)
	if err != nil {
		return statsdomain.Stats{}, err
	}

	weekStart, weekEnd := WeekWindow(now)
	weekRows, err := s.attendancesvc.RangeRows(ctx, crewID, weekStart, weekEnd)
	if err != nil {
		return statsdomain.Stats{}, err
	}

	countRows, err := s.attendancesvc.MonthRows(ctx, crewID, year, month)
	if err != nil {
		return statsdomain.Stats{}, err
	}
	weekdayRows, err := s.attendancesvc.MonthRows(ctx, crewID, year, month)
	if err != nil {
		return statsdomain.Stats{}, err
	}
	locationRows, err := s.attendancesvc.MonthRows(ctx, crewID, year, month)
	if err != nil {
		return statsdomain.Stats{}, err
	}
	rateRows, err := s.attendancesvc.MonthRows(ctx, crewID, year, month)
	if err != nil {
		return statsdomain.Stats{}, err
	}

	stats := statsdomain.Stats{
		TotalActiveMembers: total,
		TodayAttendees:     UniqueAttendees(todayRows),
		WeekAttendees:      UniqueAttendees(weekRows),
		MonthEventCount:    len(countRows),
		WeekdayRates:       WeekdayRates(weekdayRows, total),
		LocationRates:      LocationRates(locationRows),
	}
	stats.AttendanceRate, stats.GhostRate = AttendanceRates(rateRows, total)
	return stats, nil
}

// computeOptimized pulls the roster, the month, and the current week once,
// then derives every metric in memory. Today is carved out of the week rows
// since the Monday-start week always contains it.
func (s *Service) computeOptimized(ctx context.Context, crewID snowflake.ID, year, month int, now time.Time) (statsdomain.Stats, error) {
	members, err := s.crewsvc.ActiveMembers(ctx, crewID)
	if err != nil {
		return statsdomain.Stats{}, err
	}
	total := len(members)

	weekStart, weekEnd := WeekWindow(now)
	weekRows, err := s.attendancesvc.RangeRows(ctx, crewID, weekStart, weekEnd)
	if err != nil {
		return statsdomain.Stats{}, err
	}

	monthRows, err := s.attendancesvc.MonthRows(ctx, crewID, year, month)
	if err != nil {
		return statsdomain.Stats{}, err
	}

	dayStart, dayEnd := DayWindow(now)
	todayRows := weekRows[:0:0]
	for _, row := range weekRows {
		at := row.OccurredAt.UTC()
		if !at.Before(dayStart) && at.Before(dayEnd) {
			todayRows = append(todayRows, row)
		}
	}

	stats := statsdomain.Stats{
		TotalActiveMembers: total,
		TodayAttendees:     UniqueAttendees(todayRows),
		WeekAttendees:      UniqueAttendees(weekRows),
		MonthEventCount:    len(monthRows),
		WeekdayRates:       WeekdayRates(monthRows, total),
		LocationRates:      LocationRates(monthRows),
	}
	stats.AttendanceRate, stats.GhostRate = AttendanceRates(monthRows, total)
	return stats, nil
}

// DayWindow returns the [start, end) UTC window of the day containing now.
func DayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// WeekWindow returns the [start, end) UTC window of the Monday-start week
// containing now.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

// UniqueAttendees counts distinct users across the rows.
func UniqueAttendees(rows []attendancedomain.EventRow) int {
	seen := make(map[snowflake.ID]struct{}, len(rows))
	for _, row := range rows {
		seen[row.UserID] = struct{}{}
	}
	return len(seen)
}

// WeekdayRates returns, per weekday Sunday..Saturday, the percent of active
// members with at least one event on that weekday within the rows.
func WeekdayRates(rows []attendancedomain.EventRow, totalMembers int) [7]int {
	var rates [7]int
	if totalMembers == 0 {
		return rates
	}
	var seen [7]map[snowflake.ID]struct{}
	for _, row := range rows {
		wd := int(row.OccurredAt.UTC().Weekday())
		if seen[wd] == nil {
			seen[wd] = make(map[snowflake.ID]struct{})
		}
		seen[wd][row.UserID] = struct{}{}
	}
	for wd := range rates {
		rates[wd] = Percent(len(seen[wd]), totalMembers)
	}
	return rates
}

// LocationRates returns each location's percent share of the rows.
func LocationRates(rows []attendancedomain.EventRow) map[string]int {
	rates := make(map[string]int)
	if len(rows) == 0 {
		return rates
	}
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Location]++
	}
	for loc, n := range counts {
		rates[loc] = Percent(n, len(rows))
	}
	return rates
}

// AttendanceRates returns the percent of active members with at least one
// event in the rows and its complement. Zero members yields 0, 0.
func AttendanceRates(rows []attendancedomain.EventRow, totalMembers int) (int, int) {
	if totalMembers == 0 {
		return 0, 0
	}
	attended := UniqueAttendees(rows)
	rate := Percent(attended, totalMembers)
	return rate, 100 - rate
}

// Percent rounds part/whole to a whole percent, guarding whole == 0.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}
