package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fitcrew/rollcall/internal/crewcontext"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderUser      = "X-User-ID"
)

// RequestID propagates the caller's correlation ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// UserContext resolves the crew path parameter and the acting user header
// into the request context. Identity itself comes from the excluded auth
// layer upstream; here the header is trusted as-is.
func (s *Server) UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		crewID, err := snowflake.ParseString(strings.TrimSpace(c.Param("crewId")))
		if err != nil || crewID == 0 {
			AbortWithError(c, newValidationError("crew_id", "invalid_crew", "invalid crew id"))
			return
		}

		ctx := crewcontext.WithCrewID(c.Request.Context(), crewID)

		if raw := strings.TrimSpace(c.GetHeader(HeaderUser)); raw != "" {
			userID, err := snowflake.ParseString(raw)
			if err != nil {
				AbortWithError(c, newValidationError("user_id", "invalid_user", "invalid user id"))
				return
			}
			ctx = crewcontext.WithUserID(ctx, userID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func crewIDParam(c *gin.Context) (snowflake.ID, bool) {
	return crewcontext.CrewIDFromContext(c.Request.Context())
}

func actingUser(c *gin.Context) (snowflake.ID, bool) {
	return crewcontext.UserIDFromContext(c.Request.Context())
}
