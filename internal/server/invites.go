package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invitedomain "github.com/fitcrew/rollcall/internal/invite/domain"
)

type issueInviteBody struct {
	Description *string `json:"description,omitempty"`
}

func (s *Server) IssueInviteCode(c *gin.Context) {
	crewID, ok := crewIDParam(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	issuerID, ok := actingUser(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var body issueInviteBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithError(c, newValidationError("body", "invalid_request", "malformed request body"))
			return
		}
	}

	invite, err := s.inviteSvc.Issue(c.Request.Context(), invitedomain.IssueRequest{
		CrewID:      crewID,
		Description: body.Description,
		IssuerID:    issuerID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, invite)
}

func (s *Server) DeactivateInviteCode(c *gin.Context) {
	crewID, ok := crewIDParam(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		AbortWithError(c, newValidationError("code", "invalid_code", "code is required"))
		return
	}

	invite, err := s.inviteSvc.Deactivate(c.Request.Context(), crewID, code)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invite)
}
