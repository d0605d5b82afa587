package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	catalogdomain "github.com/fitcrew/rollcall/internal/catalog/domain"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	obsmetrics "github.com/fitcrew/rollcall/internal/observability/metrics"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/fitcrew/rollcall/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	CrewSvc    crewdomain.Service
	CatalogSvc catalogdomain.Service
	Metrics    *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID      *snowflake.Node
	crewsvc    crewdomain.Service
	catalogsvc catalogdomain.Service
	metrics    *obsmetrics.Metrics
	eventrepo  repository.Repository[attendancedomain.AttendanceEvent]
}

func NewService(p ServiceParam) attendancedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("attendance.service"),

		genID:      p.GenID,
		crewsvc:    p.CrewSvc,
		catalogsvc: p.CatalogSvc,
		metrics:    p.Metrics,
		eventrepo:  repository.ProvideStore[attendancedomain.AttendanceEvent](p.DB),
	}
}

// RecordBulk inserts the whole batch in one transaction. The unique index on
// (crew_id, user_id, occurred_on) is the safety net against concurrent
// recorders; any violation rolls the batch back and surfaces as
// ErrDuplicateAttendance.
func (s *Service) RecordBulk(ctx context.Context, req attendancedomain.RecordBulkRequest) (attendancedomain.BulkResult, error) {
	userIDs, err := validateRecordBulk(req)
	if err != nil {
		return attendancedomain.BulkResult{}, err
	}

	if _, err := s.crewsvc.GetByID(ctx, req.CrewID); err != nil {
		return attendancedomain.BulkResult{}, err
	}

	isAdmin, err := s.crewsvc.IsCrewAdmin(ctx, req.CrewID, req.ActingAdminID)
	if err != nil {
		return attendancedomain.BulkResult{}, err
	}
	if !isAdmin {
		return attendancedomain.BulkResult{}, attendancedomain.ErrNotCrewAdmin
	}

	location, err := s.catalogsvc.ResolveLocation(ctx, req.CrewID, req.LocationID)
	if err != nil {
		return attendancedomain.BulkResult{}, err
	}

	now := time.Now().UTC()
	occurredAt := req.OccurredAt.UTC()
	events := make([]*attendancedomain.AttendanceEvent, 0, len(userIDs))
	for _, userID := range userIDs {
		events = append(events, &attendancedomain.AttendanceEvent{
			ID:             s.genID.Generate(),
			CrewID:         req.CrewID,
			UserID:         userID,
			OccurredAt:     occurredAt,
			OccurredOn:     attendancedomain.DayOf(occurredAt),
			Location:       location.Name,
			ExerciseTypeID: req.ExerciseTypeID,
			IsHost:         userID == req.ActingAdminID,
			CreatedAt:      now,
		})
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.eventrepo.WithTrx(tx).BatchCreate(ctx, events)
	}); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return attendancedomain.BulkResult{}, attendancedomain.ErrDuplicateAttendance
		}
		return attendancedomain.BulkResult{}, err
	}

	createdIDs := make([]snowflake.ID, 0, len(events))
	for _, event := range events {
		createdIDs = append(createdIDs, event.ID)
	}

	if s.metrics != nil {
		s.metrics.AttendanceRecorded.Add(float64(len(createdIDs)))
	}
	s.log.Info("bulk attendance recorded",
		zap.String("crew_id", req.CrewID.String()),
		zap.Int("created", len(createdIDs)),
		zap.String("day", attendancedomain.DayOf(occurredAt)),
	)

	return attendancedomain.BulkResult{
		CreatedCount: len(createdIDs),
		CreatedIDs:   createdIDs,
	}, nil
}

func (s *Service) MonthRows(ctx context.Context, crewID snowflake.ID, year, month int) ([]attendancedomain.EventRow, error) {
	start, end, err := attendancedomain.MonthBounds(year, month)
	if err != nil {
		return nil, err
	}
	return s.RangeRows(ctx, crewID, start, end)
}

func (s *Service) RangeRows(ctx context.Context, crewID snowflake.ID, start, end time.Time) ([]attendancedomain.EventRow, error) {
	if crewID == 0 {
		return nil, crewdomain.ErrInvalidCrew
	}

	var rows []attendancedomain.EventRow
	if err := s.db.WithContext(ctx).Raw(
		`SELECT e.id, e.user_id, m.display_name, m.avatar_url,
		        e.occurred_at, e.location, e.exercise_type_id, e.is_host
		 FROM attendance_events e
		 LEFT JOIN members m ON m.crew_id = e.crew_id AND m.user_id = e.user_id
		 WHERE e.crew_id = ? AND e.occurred_at >= ? AND e.occurred_at < ?
		 ORDER BY e.occurred_at ASC, e.id ASC`,
		crewID,
		start.UTC(),
		end.UTC(),
	).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// validateRecordBulk enforces all preconditions that need no I/O and
// deduplicates the user list, preserving input order.
func validateRecordBulk(req attendancedomain.RecordBulkRequest) ([]snowflake.ID, error) {
	if req.CrewID == 0 {
		return nil, crewdomain.ErrInvalidCrew
	}
	if req.ActingAdminID == 0 {
		return nil, attendancedomain.ErrNotCrewAdmin
	}
	if len(req.UserIDs) == 0 {
		return nil, attendancedomain.ErrEmptyUserList
	}
	if req.OccurredAt.IsZero() {
		return nil, attendancedomain.ErrInvalidOccurredAt
	}
	if err := attendancedomain.ValidateYearMonth(req.OccurredAt.UTC().Year(), int(req.OccurredAt.UTC().Month())); err != nil {
		return nil, attendancedomain.ErrInvalidOccurredAt
	}

	seen := make(map[snowflake.ID]struct{}, len(req.UserIDs))
	userIDs := make([]snowflake.ID, 0, len(req.UserIDs))
	for _, userID := range req.UserIDs {
		if userID == 0 {
			return nil, attendancedomain.ErrInvalidUser
		}
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		userIDs = append(userIDs, userID)
	}
	return userIDs, nil
}
