package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	"github.com/fitcrew/rollcall/pkg/db/option"
	"github.com/fitcrew/rollcall/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	crewrepo   repository.Repository[crewdomain.Crew]
	memberrepo repository.Repository[crewdomain.Member]
}

func NewService(p ServiceParam) crewdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("crew.service"),

		crewrepo:   repository.ProvideStore[crewdomain.Crew](p.DB),
		memberrepo: repository.ProvideStore[crewdomain.Member](p.DB),
	}
}

func (s *Service) GetByID(ctx context.Context, crewID snowflake.ID) (*crewdomain.Crew, error) {
	if crewID == 0 {
		return nil, crewdomain.ErrInvalidCrew
	}
	crew, err := s.crewrepo.FindOne(ctx, &crewdomain.Crew{ID: crewID})
	if err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, crewdomain.ErrCrewNotFound
	}
	return crew, nil
}

func (s *Service) ActiveMembers(ctx context.Context, crewID snowflake.ID) ([]crewdomain.Member, error) {
	if crewID == 0 {
		return nil, crewdomain.ErrInvalidCrew
	}
	rows, err := s.memberrepo.Find(ctx,
		&crewdomain.Member{CrewID: crewID, IsActive: true},
		option.WithOrder("display_name ASC, user_id ASC"),
	)
	if err != nil {
		return nil, err
	}

	members := make([]crewdomain.Member, 0, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		members = append(members, *row)
	}
	return members, nil
}

func (s *Service) MemberRole(ctx context.Context, crewID, userID snowflake.ID) (string, error) {
	if crewID == 0 {
		return "", crewdomain.ErrInvalidCrew
	}
	// A zero userID would turn the struct filter below into a bare crew
	// lookup and match an arbitrary member.
	if userID == 0 {
		return "", crewdomain.ErrMemberNotFound
	}
	member, err := s.memberrepo.FindOne(ctx, &crewdomain.Member{CrewID: crewID, UserID: userID})
	if err != nil {
		return "", err
	}
	if member == nil || !member.IsActive {
		return "", crewdomain.ErrMemberNotFound
	}
	return member.Role, nil
}

func (s *Service) IsCrewAdmin(ctx context.Context, crewID, userID snowflake.ID) (bool, error) {
	role, err := s.MemberRole(ctx, crewID, userID)
	if err != nil {
		return false, err
	}
	return role == crewdomain.RoleOwner || role == crewdomain.RoleAdmin, nil
}
