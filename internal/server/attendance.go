package server

import (
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	attendancedomain "github.com/fitcrew/rollcall/internal/attendance/domain"
)

type recordBulkBody struct {
	UserIDs        []snowflake.ID `json:"user_ids"`
	OccurredAt     time.Time      `json:"occurred_at"`
	LocationID     snowflake.ID   `json:"location_id"`
	ExerciseTypeID int            `json:"exercise_type_id"`
}

func (s *Server) RecordBulkAttendance(c *gin.Context) {
	crewID, ok := crewIDParam(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	actingAdminID, ok := actingUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var body recordBulkBody
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, newValidationError("body", "invalid_request", "malformed request body"))
		return
	}

	result, err := s.attendanceSvc.RecordBulk(c.Request.Context(), attendancedomain.RecordBulkRequest{
		CrewID:         crewID,
		UserIDs:        body.UserIDs,
		OccurredAt:     body.OccurredAt,
		LocationID:     body.LocationID,
		ExerciseTypeID: body.ExerciseTypeID,
		ActingAdminID:  actingAdminID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
