package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	calendardomain "github.com/fitcrew/rollcall/internal/calendar/domain"
)

func (s *Server) GetCalendar(c *gin.Context) {
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

	summary, err := s.calendarSvc.AggregateMonth(c.Request.Context(), calendardomain.AggregateRequest{
		CrewID: crewID,
		Year:   year,
		Month:  month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
