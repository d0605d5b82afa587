package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

type Service interface {
	GetByID(ctx context.Context, crewID snowflake.ID) (*Crew, error)
	ActiveMembers(ctx context.Context, crewID snowflake.ID) ([]Member, error)
	MemberRole(ctx context.Context, crewID, userID snowflake.ID) (string, error)
	IsCrewAdmin(ctx context.Context, crewID, userID snowflake.ID) (bool, error)
}

var (
	ErrInvalidCrew    = errors.New("invalid_crew")
	ErrCrewNotFound   = errors.New("crew_not_found")
	ErrMemberNotFound = errors.New("member_not_found")
)
