package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/fitcrew/rollcall/internal/catalog/domain"
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

	locationrepo repository.Repository[catalogdomain.Location]
	exerciserepo repository.Repository[catalogdomain.ExerciseType]
}

func NewService(p ServiceParam) catalogdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("catalog.service"),

		locationrepo: repository.ProvideStore[catalogdomain.Location](p.DB),
		exerciserepo: repository.ProvideStore[catalogdomain.ExerciseType](p.DB),
	}
}

func (s *Service) ResolveLocation(ctx context.Context, crewID, locationID snowflake.ID) (*catalogdomain.Location, error) {
	if crewID == 0 || locationID == 0 {
		return nil, catalogdomain.ErrInvalidLocation
	}
	location, err := s.locationrepo.FindOne(ctx, &catalogdomain.Location{ID: locationID, CrewID: crewID})
	if err != nil {
		return nil, err
	}
	if location == nil || !location.IsActive {
		return nil, catalogdomain.ErrInvalidLocation
	}
	return location, nil
}

func (s *Service) ExerciseLabels(ctx context.Context) (map[int]string, error) {
	rows, err := s.exerciserepo.Find(ctx, &catalogdomain.ExerciseType{})
	if err != nil {
		return nil, err
	}

	labels := make(map[int]string, len(rows))
	for _, row := range rows {
		if row == nil {
			continue
		}
		labels[row.ID] = row.Label
	}
	return labels, nil
}
