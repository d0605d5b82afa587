package service

import (
	"context"
	"crypto/rand"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	crewdomain "github.com/fitcrew/rollcall/internal/crew/domain"
	invitedomain "github.com/fitcrew/rollcall/internal/invite/domain"
	obsmetrics "github.com/fitcrew/rollcall/internal/observability/metrics"
	"github.com/fitcrew/rollcall/pkg/db"
	"github.com/fitcrew/rollcall/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	CrewSvc crewdomain.Service
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	genID   *snowflake.Node
	crewsvc crewdomain.Service
	metrics *obsmetrics.Metrics
	repo    repository.Repository[invitedomain.InviteCode]

	// randSrc feeds code generation; tests swap it for a rigged reader.
	randSrc io.Reader
}

func NewService(p ServiceParam) invitedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("invite.service"),

		genID:   p.GenID,
		crewsvc: p.CrewSvc,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[invitedomain.InviteCode](p.DB),

		randSrc: rand.Reader,
	}
}

// Issue draws candidate codes until one lands. The unique index on code is
// the real guard against a concurrent winner between the pre-check and the
// insert; a duplicate-key insert counts as a collision and loops back.
func (s *Service) Issue(ctx context.Context, req invitedomain.IssueRequest) (*invitedomain.InviteCode, error) {
	if req.IssuerID == 0 {
		return nil, invitedomain.ErrInvalidIssuer
	}
	if _, err := s.crewsvc.GetByID(ctx, req.CrewID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= invitedomain.MaxAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, err
		}

		existing, err := s.repo.FindOne(ctx, &invitedomain.InviteCode{Code: code})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if s.metrics != nil {
				s.metrics.InviteRetries.Inc()
			}
			continue
		}

		now := time.Now().UTC()
		invite := &invitedomain.InviteCode{
			ID:          s.genID.Generate(),
			Code:        code,
			CrewID:      req.CrewID,
			IsActive:    true,
			CreatedBy:   req.IssuerID,
			Description: req.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.Create(ctx, invite); err != nil {
			if db.IsDuplicateKeyErr(err) {
				if s.metrics != nil {
					s.metrics.InviteRetries.Inc()
				}
				continue
			}
			return nil, err
		}

		if s.metrics != nil {
			s.metrics.InviteCodesIssued.Inc()
		}
		s.log.Info("invite code issued",
			zap.String("crew_id", req.CrewID.String()),
			zap.String("code", invite.Code),
			zap.Int("attempt", attempt),
		)
		return invite, nil
	}

	s.log.Warn("invite code space exhausted",
		zap.String("crew_id", req.CrewID.String()),
		zap.Int("attempts", invitedomain.MaxAttempts),
	)
	return nil, invitedomain.ErrCodeGenerationExhausted
}

func (s *Service) Deactivate(ctx context.Context, crewID snowflake.ID, code string) (*invitedomain.InviteCode, error) {
	if crewID == 0 {
		return nil, crewdomain.ErrInvalidCrew
	}

	invite, err := s.repo.FindOne(ctx, &invitedomain.InviteCode{Code: code, CrewID: crewID})
	if err != nil {
		return nil, err
	}
	if invite == nil {
		return nil, invitedomain.ErrCodeNotFound
	}

	if err := s.repo.Update(ctx, invite.ID.String(), map[string]any{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	invite.IsActive = false
	return invite, nil
}

// generateCode draws CodeLength uniform symbols from CodeAlpha. Bytes at or
// above 208 (the largest multiple of 52 below 256) are rejected so every
// symbol keeps equal probability.
func (s *Service) generateCode() (string, error) {
	const limit = byte(len(invitedomain.CodeAlpha) * (256 / len(invitedomain.CodeAlpha)))

	out := make([]byte, 0, invitedomain.CodeLength)
	buf := make([]byte, 1)
	for len(out) < invitedomain.CodeLength {
		if _, err := io.ReadFull(s.randSrc, buf); err != nil {
			return "", err
		}
		if buf[0] >= limit {
			continue
		}
		out = append(out, invitedomain.CodeAlpha[int(buf[0])%len(invitedomain.CodeAlpha)])
	}
	return string(out), nil
}
