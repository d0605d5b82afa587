package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	rankingdomain "github.com/fitcrew/rollcall/internal/ranking/domain"
)

func (s *Server) GetRankings(c *gin.Context) {
	crewID, ok := crewIDParam(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	year, month, err := yearMonthQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	metric := rankingdomain.MetricAttendance
	if raw := strings.TrimSpace(c.Query("metric")); raw != "" {
		metric = rankingdomain.Metric(raw)
	}

	requestingUserID, _ := actingUser(c)

	entries, err := s.rankingSvc.ComputeRanking(c.Request.Context(), rankingdomain.ComputeRequest{
		CrewID:           crewID,
		Year:             year,
		Month:            month,
		Metric:           metric,
		RequestingUserID: requestingUserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":    year,
		"month":   month,
		"metric":  metric,
		"entries": entries,
	})
}
