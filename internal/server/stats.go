package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	statsdomain "github.com/fitcrew/rollcall/internal/adminstats/domain"
)

func (s *Server) GetAdminStats(c *gin.Context) {
	crewID, ok := crewIDParam(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	// Window defaults to the current month when both are absent.
	year, err := intQuery(c, "year", false)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	month, err := intQuery(c, "month", false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	mode := statsdomain.Mode(strings.TrimSpace(c.Query("mode")))

	stats, err := s.statsSvc.ComputeStats(c.Request.Context(), statsdomain.ComputeRequest{
		CrewID: crewID,
		Year:   year,
		Month:  month,
		Mode:   mode,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
