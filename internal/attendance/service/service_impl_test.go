package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	catalogdomain "github.com/fitcrew/rollcall/internal/catalog/domain"
	catalogservice "github.com/fitcrew/rollcall/internal/catalog/service"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	crewservice "github.com/fitcrew/rollcall/internal/crew/service"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc    attendancedomain.Service
	conn   *gorm.DB
	node   *snowflake.Node
	crewID snowflake.ID
	admin  snowflake.ID
	member snowflake.ID
	locID  snowflake.ID
}

func setupRecorder(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&crewdomain.Crew{},
		&crewdomain.Member{},
		&catalogdomain.Location{},
		&attendancedomain.AttendanceEvent{},
	))

	node, err := snowflake.NewNode(4)
	require.NoError(t, err)
	logger := zap.NewNop()

	crewSvc := crewservice.NewService(crewservice.ServiceParam{DB: conn, Log: logger})
	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{DB: conn, Log: logger})
	svc := NewService(ServiceParam{
		DB:         conn,
		Log:        logger,
		GenID:      node,
		CrewSvc:    crewSvc,
		CatalogSvc: catalogSvc,
	})

	f := &fixture{svc: svc, conn: conn, node: node}
	f.crewID = node.Generate()
	f.admin = node.Generate()
	f.member = node.Generate()
	f.locID = node.Generate()

	require.NoError(t, conn.Create(&crewdomain.Crew{ID: f.crewID, Name: "crew"}).Error)
	require.NoError(t, conn.Create(&crewdomain.Member{ID: node.Generate(), CrewID: f.crewID, UserID: f.admin, DisplayName: "Ann", Role: crewdomain.RoleAdmin, IsActive: true}).Error)
	require.NoError(t, conn.Create(&crewdomain.Member{ID: node.Generate(), CrewID: f.crewID, UserID: f.member, DisplayName: "Bob", Role: crewdomain.RoleMember, IsActive: true}).Error)
	require.NoError(t, conn.Create(&catalogdomain.Location{ID: f.locID, CrewID: f.crewID, Name: "main gym", IsActive: true}).Error)
	return f
}

func (f *fixture) request(userIDs ...snowflake.ID) attendancedomain.RecordBulkRequest {
	return attendancedomain.RecordBulkRequest{
		CrewID:         f.crewID,
		UserIDs:        userIDs,
		OccurredAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		LocationID:     f.locID,
		ExerciseTypeID: 1,
		ActingAdminID:  f.admin,
	}
}

func countEvents(t *testing.T, conn *gorm.DB, crewID snowflake.ID) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Model(&attendancedomain.AttendanceEvent{}).Where("crew_id = ?", crewID).Count(&count).Error)
	return count
}

func TestRecordBulkCreatesEvents(t *testing.T) {
	f := setupRecorder(t)
	ctx := context.Background()

	result, err := f.svc.RecordBulk(ctx, f.request(f.admin, f.member))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CreatedCount)
	assert.Len(t, result.CreatedIDs, 2)
	assert.EqualValues(t, 2, countEvents(t, f.conn, f.crewID))

	var events []attendancedomain.AttendanceEvent
	require.NoError(t, f.conn.Where("crew_id = ?", f.crewID).Order("user_id").Find(&events).Error)
	for _, event := range events {
		assert.Equal(t, "main gym", event.Location)
		assert.Equal(t, "2025-06-01", event.OccurredOn)
		// The recording admin is the session host when they attend too.
		assert.Equal(t, event.UserID == f.admin, event.IsHost)
	}
}

func TestRecordBulkDeduplicatesInput(t *testing.T) {
	f := setupRecorder(t)

	result, err := f.svc.RecordBulk(context.Background(), f.request(f.member, f.member, f.member))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedCount)
}

func TestRecordBulkDuplicateDayConflict(t *testing.T) {
	f := setupRecorder(t)
	ctx := context.Background()

	_, err := f.svc.RecordBulk(ctx, f.request(f.member))
	require.NoError(t, err)

	// Same member, same calendar day, different hour.
	req := f.request(f.member)
	req.OccurredAt = time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC)
	_, err = f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, attendancedomain.ErrDuplicateAttendance)

	// The failed batch must not have touched existing rows.
	assert.EqualValues(t, 1, countEvents(t, f.conn, f.crewID))
}

func TestRecordBulkDuplicateRollsBackWholeBatch(t *testing.T) {
	f := setupRecorder(t)
	ctx := context.Background()

	_, err := f.svc.RecordBulk(ctx, f.request(f.member))
	require.NoError(t, err)

	// A batch mixing a fresh user with a conflicting one writes nothing.
	_, err = f.svc.RecordBulk(ctx, f.request(f.admin, f.member))
	assert.ErrorIs(t, err, attendancedomain.ErrDuplicateAttendance)
	assert.EqualValues(t, 1, countEvents(t, f.conn, f.crewID))
}

func TestRecordBulkForbiddenForNonAdmin(t *testing.T) {
	f := setupRecorder(t)

	req := f.request(f.member)
	req.ActingAdminID = f.member
	_, err := f.svc.RecordBulk(context.Background(), req)
	assert.ErrorIs(t, err, attendancedomain.ErrNotCrewAdmin)
	assert.EqualValues(t, 0, countEvents(t, f.conn, f.crewID))
}

func TestRecordBulkValidation(t *testing.T) {
	f := setupRecorder(t)
	ctx := context.Background()

	req := f.request()
	_, err := f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, attendancedomain.ErrEmptyUserList)

	req = f.request(f.member)
	req.OccurredAt = time.Time{}
	_, err = f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, attendancedomain.ErrInvalidOccurredAt)

	req = f.request(0)
	_, err = f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, attendancedomain.ErrInvalidUser)

	req = f.request(f.member)
	req.LocationID = f.node.Generate()
	_, err = f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, catalogdomain.ErrInvalidLocation)

	req = f.request(f.member)
	req.CrewID = f.node.Generate()
	_, err = f.svc.RecordBulk(ctx, req)
	assert.ErrorIs(t, err, crewdomain.ErrCrewNotFound)
}

func TestMonthRowsJoinsRoster(t *testing.T) {
	f := setupRecorder(t)
	ctx := context.Background()

	_, err := f.svc.RecordBulk(ctx, f.request(f.admin, f.member))
	require.NoError(t, err)

	rows, err := f.svc.MonthRows(ctx, f.crewID, 2025, 6)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	names := map[snowflake.ID]string{f.admin: "Ann", f.member: "Bob"}
	for _, row := range rows {
		assert.Equal(t, names[row.UserID], row.DisplayName)
		assert.Equal(t, "main gym", row.Location)
	}
}
