package service

import (
	"context"
	"fmt"
	"strings"

	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	calendardomain "github.com/fitcrew/rollcall/internal/calendar/domain"
	catalogdomain "github.com/fitcrew/rollcall/internal/catalog/domain"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	rankingdomain "github.com/fitcrew/rollcall/internal/ranking/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log           *zap.Logger
	CrewSvc       crewdomain.Service
	CatalogSvc    catalogdomain.Service
	AttendanceSvc attendancedomain.Service
}

type Service struct {
	log *zap.Logger

	crewsvc       crewdomain.Service
	catalogsvc    catalogdomain.Service
	attendancesvc attendancedomain.Service
}

func NewService(p ServiceParam) calendardomain.Service {
	return &Service{
		log: p.Log.Named("calendar.service"),

		crewsvc:       p.CrewSvc,
		catalogsvc:    p.CatalogSvc,
		attendancesvc: p.AttendanceSvc,
	}
}

func (s *Service) AggregateMonth(ctx context.Context, req calendardomain.AggregateRequest) (calendardomain.MonthSummary, error) {
	if err := attendancedomain.ValidateYearMonth(req.Year, req.Month); err != nil {
		return calendardomain.MonthSummary{}, err
	}

	if _, err := s.crewsvc.GetByID(ctx, req.CrewID); err != nil {
		return calendardomain.MonthSummary{}, err
	}

	rows, err := s.attendancesvc.MonthRows(ctx, req.CrewID, req.Year, req.Month)
	if err != nil {
		return calendardomain.MonthSummary{}, err
	}

	labels, err := s.catalogsvc.ExerciseLabels(ctx)
	if err != nil {
		return calendardomain.MonthSummary{}, err
	}

	return Aggregate(req.Year, req.Month, rows, labels), nil
}

// Aggregate buckets the rows by UTC calendar day. The summary covers every
// day of the month, zeroed where nothing happened; detail rows keep the
// input order, which the read query already sorted by occurred_at.
func Aggregate(year, month int, rows []attendancedomain.EventRow, labels map[int]string) calendardomain.MonthSummary {
	days := attendancedomain.DaysInMonth(year, month)

	summary := calendardomain.MonthSummary{
		Year:    year,
		Month:   month,
		Days:    make([]calendardomain.DaySummary, days),
		Details: make(map[string][]calendardomain.DetailRow),
	}
	for day := 1; day <= days; day++ {
		summary.Days[day-1] = calendardomain.DaySummary{
			Date: fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		}
	}

	for _, row := range rows {
		occurred := row.OccurredAt.UTC()
		if int(occurred.Month()) != month || occurred.Year() != year {
			continue
		}
		day := occurred.Day()
		bucket := &summary.Days[day-1]
		bucket.AttendeeCount++
		if row.IsHost {
			bucket.HostCount++
		}

		name := strings.TrimSpace(row.DisplayName)
		if name == "" {
			name = rankingdomain.PlaceholderName
		}
		label, ok := labels[row.ExerciseTypeID]
		if !ok || label == "" {
			label = catalogdomain.UnknownExerciseLabel
		}
		summary.Details[bucket.Date] = append(summary.Details[bucket.Date], calendardomain.DetailRow{
			UserID:        row.UserID,
			DisplayName:   name,
			Location:      row.Location,
			ExerciseLabel: label,
			IsHost:        row.IsHost,
			OccurredAt:    occurred,
		})
	}

	return summary
}
