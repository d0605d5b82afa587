package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Accepted year bounds for any month-scoped operation.
const (
	MinYear = 1900
	MaxYear = 2200
)

type RecordBulkRequest struct {
	CrewID         snowflake.ID   `json:"crew_id"`
	UserIDs        []snowflake.ID `json:"user_ids"`
	OccurredAt     time.Time      `json:"occurred_at"`
	LocationID     snowflake.ID   `json:"location_id"`
	ExerciseTypeID int            `json:"exercise_type_id"`
	ActingAdminID  snowflake.ID   `json:"acting_admin_id"`
}

type BulkResult struct {
	CreatedCount int            `json:"created_count"`
	CreatedIDs   []snowflake.ID `json:"created_ids"`
}

type Service interface {
	// RecordBulk inserts one event per user, all-or-nothing. A duplicate day
	// for any user fails the whole batch with ErrDuplicateAttendance.
	RecordBulk(ctx context.Context, req RecordBulkRequest) (BulkResult, error)
	// MonthRows returns the crew's events within the UTC month window joined
	// with roster display fields, ordered by occurred_at then id.
	MonthRows(ctx context.Context, crewID snowflake.ID, year, month int) ([]EventRow, error)
	// RangeRows is MonthRows over an arbitrary [start, end) UTC window.
	RangeRows(ctx context.Context, crewID snowflake.ID, start, end time.Time) ([]EventRow, error)
}

var (
	ErrInvalidYear         = errors.New("invalid_year")
	ErrInvalidMonth        = errors.New("invalid_month")
	ErrEmptyUserList       = errors.New("empty_user_list")
	ErrInvalidUser         = errors.New("invalid_user")
	ErrInvalidOccurredAt   = errors.New("invalid_occurred_at")
	ErrNotCrewAdmin        = errors.New("not_crew_admin")
	ErrDuplicateAttendance = errors.New("duplicate_attendance")
)

// ValidateYearMonth rejects out-of-range windows before any I/O.
func ValidateYearMonth(year, month int) error {
	if year < MinYear || year > MaxYear {
		return ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// MonthBounds returns the [start, end) UTC window of the given month.
func MonthBounds(year, month int) (time.Time, time.Time, error) {
	if err := ValidateYearMonth(year, month); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// DaysInMonth returns the number of calendar days of the given month.
func DaysInMonth(year, month int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 1, -1).Day()
}
