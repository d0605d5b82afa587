package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	rankingdomain "github.com/fitcrew/rollcall/internal/ranking/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServiceParam struct {
	fx.In

	Log           *zap.Logger
	CrewSvc       crewdomain.Service
	AttendanceSvc attendancedomain.Service
}

type Service struct {
	log *zap.Logger

	crewsvc       crewdomain.Service
	attendancesvc attendancedomain.Service
}

func NewService(p ServiceParam) rankingdomain.Service {
	return &Service{
		log: p.Log.Named("ranking.service"),

		crewsvc:       p.CrewSvc,
		attendancesvc: p.AttendanceSvc,
	}
}

func (s *Service) ComputeRanking(ctx context.Context, req rankingdomain.ComputeRequest) ([]rankingdomain.RankEntry, error) {
	if err := attendancedomain.ValidateYearMonth(req.Year, req.Month); err != nil {
		return nil, err
	}
	switch req.Metric {
	case rankingdomain.MetricAttendance, rankingdomain.MetricHosting:
	default:
		return nil, rankingdomain.ErrInvalidMetric
	}

	if _, err := s.crewsvc.GetByID(ctx, req.CrewID); err != nil {
		return nil, err
	}

	rows, err := s.attendancesvc.MonthRows(ctx, req.CrewID, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	if req.Metric == rankingdomain.MetricHosting {
		hosted := rows[:0:0]
		for _, row := range rows {
			if row.IsHost {
				hosted = append(hosted, row)
			}
		}
		rows = hosted
	}

	return Rank(rows, req.RequestingUserID), nil
}

type aggregate struct {
	userID      snowflake.ID
	displayName string
	avatarURL   *string
	value       int
}

// Rank groups the rows by participant, counts them and orders the result by
// count descending with name ascending as the tie-break. Ranks are assigned
// by final position, so equal counts still get distinct consecutive ranks.
// Display fields follow the last row seen per participant in input order.
func Rank(rows []attendancedomain.EventRow, requestingUserID snowflake.ID) []rankingdomain.RankEntry {
	byUser := make(map[snowflake.ID]*aggregate, len(rows))
	order := make([]*aggregate, 0, len(rows))

	for _, row := range rows {
		agg, ok := byUser[row.UserID]
		if !ok {
			agg = &aggregate{userID: row.UserID}
			byUser[row.UserID] = agg
			order = append(order, agg)
		}
		agg.value++
		agg.displayName = strings.TrimSpace(row.DisplayName)
		agg.avatarURL = row.AvatarURL
	}

	for _, agg := range order {
		if agg.displayName == "" {
			agg.displayName = rankingdomain.PlaceholderName
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].value != order[j].value {
			return order[i].value > order[j].value
		}
		if cmp := strings.Compare(order[i].displayName, order[j].displayName); cmp != 0 {
			return cmp < 0
		}
		return order[i].userID < order[j].userID
	})

	entries := make([]rankingdomain.RankEntry, 0, len(order))
	for i, agg := range order {
		entries = append(entries, rankingdomain.RankEntry{
			UserID:           agg.userID,
			DisplayName:      agg.displayName,
			AvatarURL:        agg.avatarURL,
			Value:            agg.value,
			Rank:             i + 1,
			IsRequestingUser: requestingUserID != 0 && agg.userID == requestingUserID,
		})
	}
	return entries
}
