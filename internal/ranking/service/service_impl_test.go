package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	attendanceservice "github.com/fitcrew/rollcall/internal/attendance/service"
	catalogservice "github.com/fitcrew/rollcall/internal/catalog/service"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	crewservice "github.com/fitcrew/rollcall/internal/crew/service"
	rankingdomain "github.com/fitcrew/rollcall/internal/ranking/domain"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func row(userID snowflake.ID, name string, isHost bool) attendancedomain.EventRow {
	return attendancedomain.EventRow{
		UserID:      userID,
		DisplayName: name,
		IsHost:      isHost,
	}
}

func TestRankEmptyInput(t *testing.T) {
	entries := Rank(nil, 0)
	assert.Empty(t, entries)
}

func TestRankNoGaps(t *testing.T) {
	rows := []attendancedomain.EventRow{
		row(1, "Ann", false),
		row(1, "Ann", false),
		row(1, "Ann", false),
		row(2, "Bob", false),
		row(2, "Bob", false),
		row(3, "Cid", false),
		row(4, "Dee", false),
		row(4, "Dee", false),
		row(5, "Eve", false),
	}

	entries := Rank(rows, 0)
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
	}
	assert.Equal(t, 3, entries[0].Value)
}

func TestRankTieBreakByName(t *testing.T) {
	forward := []attendancedomain.EventRow{
		row(10, "Ann", false),
		row(20, "Bob", false),
	}
	reversed := []attendancedomain.EventRow{
		row(20, "Bob", false),
		row(10, "Ann", false),
	}

	for _, rows := range [][]attendancedomain.EventRow{forward, reversed} {
		entries := Rank(rows, 0)
		require.Len(t, entries, 2)
		assert.Equal(t, "Ann", entries[0].DisplayName)
		assert.Equal(t, 1, entries[0].Rank)
		assert.Equal(t, "Bob", entries[1].DisplayName)
		assert.Equal(t, 2, entries[1].Rank)
	}
}

func TestRankPlaceholderName(t *testing.T) {
	entries := Rank([]attendancedomain.EventRow{row(7, "  ", false)}, 0)
	require.Len(t, entries, 1)
	assert.Equal(t, rankingdomain.PlaceholderName, entries[0].DisplayName)
}

func TestRankFlagsRequestingUser(t *testing.T) {
	rows := []attendancedomain.EventRow{
		row(1, "Ann", false),
		row(2, "Bob", false),
	}
	entries := Rank(rows, 2)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, entry.UserID == snowflake.ID(2), entry.IsRequestingUser)
	}
}

func TestRankDeterministic(t *testing.T) {
	rows := make([]attendancedomain.EventRow, 0, 60)
	names := []string{"Ann", "Bob", "Cid", "Dee", "Eve", "Fay"}
	for i := 0; i < 60; i++ {
		user := snowflake.ID(i%6 + 1)
		rows = append(rows, row(user, names[i%6], i%3 == 0))
	}

	first, err := json.Marshal(Rank(rows, 3))
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := json.Marshal(Rank(rows, 3))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func setupRankingService(t *testing.T) (rankingdomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&crewdomain.Crew{},
		&crewdomain.Member{},
		&attendancedomain.AttendanceEvent{},
	))

	node := mustNode(t)
	logger := zap.NewNop()

	crewSvc := crewservice.NewService(crewservice.ServiceParam{DB: conn, Log: logger})
	catalogSvc := catalogservice.NewService(catalogservice.ServiceParam{DB: conn, Log: logger})
	attendanceSvc := attendanceservice.NewService(attendanceservice.ServiceParam{
		DB:         conn,
		Log:        logger,
		GenID:      node,
		CrewSvc:    crewSvc,
		CatalogSvc: catalogSvc,
	})
	svc := NewService(ServiceParam{
		Log:           logger,
		CrewSvc:       crewSvc,
		AttendanceSvc: attendanceSvc,
	})
	return svc, conn, node
}

func seedEvent(t *testing.T, conn *gorm.DB, node *snowflake.Node, crewID, userID snowflake.ID, at time.Time, isHost bool) {
	t.Helper()
	require.NoError(t, conn.Create(&attendancedomain.AttendanceEvent{
		ID:             node.Generate(),
		CrewID:         crewID,
		UserID:         userID,
		OccurredAt:     at.UTC(),
		OccurredOn:     attendancedomain.DayOf(at),
		Location:       "gym",
		ExerciseTypeID: 1,
		IsHost:         isHost,
	}).Error)
}

func TestComputeRankingHostingMetric(t *testing.T) {
	svc, conn, node := setupRankingService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "morning crew"}).Error)

	host := node.Generate()
	guest := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Member{ID: node.Generate(), CrewID: crewID, UserID: host, DisplayName: "Ann", Role: crewdomain.RoleAdmin, IsActive: true}).Error)
	require.NoError(t, conn.Create(&crewdomain.Member{ID: node.Generate(), CrewID: crewID, UserID: guest, DisplayName: "Bob", Role: crewdomain.RoleMember, IsActive: true}).Error)

	seedEvent(t, conn, node, crewID, host, time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC), true)
	seedEvent(t, conn, node, crewID, host, time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC), true)
	seedEvent(t, conn, node, crewID, guest, time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC), false)
	seedEvent(t, conn, node, crewID, guest, time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC), false)
	seedEvent(t, conn, node, crewID, guest, time.Date(2025, 6, 4, 7, 0, 0, 0, time.UTC), false)

	attendance, err := svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{
		CrewID: crewID, Year: 2025, Month: 6, Metric: rankingdomain.MetricAttendance,
	})
	require.NoError(t, err)
	require.Len(t, attendance, 2)
	assert.Equal(t, "Bob", attendance[0].DisplayName)
	assert.Equal(t, 3, attendance[0].Value)

	hosting, err := svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{
		CrewID: crewID, Year: 2025, Month: 6, Metric: rankingdomain.MetricHosting,
	})
	require.NoError(t, err)
	require.Len(t, hosting, 1)
	assert.Equal(t, "Ann", hosting[0].DisplayName)
	assert.Equal(t, 2, hosting[0].Value)
}

func TestComputeRankingValidation(t *testing.T) {
	svc, conn, node := setupRankingService(t)
	ctx := context.Background()

	crewID := node.Generate()
	require.NoError(t, conn.Create(&crewdomain.Crew{ID: crewID, Name: "crew"}).Error)

	_, err := svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{CrewID: crewID, Year: 2025, Month: 13, Metric: rankingdomain.MetricAttendance})
	assert.ErrorIs(t, err, attendancedomain.ErrInvalidMonth)

	_, err = svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{CrewID: crewID, Year: 1899, Month: 6, Metric: rankingdomain.MetricAttendance})
	assert.ErrorIs(t, err, attendancedomain.ErrInvalidYear)

	_, err = svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{CrewID: crewID, Year: 2025, Month: 6, Metric: "steps"})
	assert.ErrorIs(t, err, rankingdomain.ErrInvalidMetric)

	_, err = svc.ComputeRanking(ctx, rankingdomain.ComputeRequest{CrewID: node.Generate(), Year: 2025, Month: 6, Metric: rankingdomain.MetricAttendance})
	assert.ErrorIs(t, err, crewdomain.ErrCrewNotFound)
}
