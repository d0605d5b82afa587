package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// Code shape and retry bound for the issuer.
const (
	CodeLength  = 7
	CodeAlpha   = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	MaxAttempts = 10
)

type IssueRequest struct {
	CrewID      snowflake.ID `json:"crew_id"`
	Description *string      `json:"description,omitempty"`
	IssuerID    snowflake.ID `json:"issuer_id"`
}

type Service interface {
	// Issue persists a fresh code, retrying on collision up to MaxAttempts.
	Issue(ctx context.Context, req IssueRequest) (*InviteCode, error)
	// Deactivate soft-disables a code. Codes are never hard-deleted.
	Deactivate(ctx context.Context, crewID snowflake.ID, code string) (*InviteCode, error)
}

var (
	ErrInvalidIssuer           = errors.New("invalid_issuer")
	ErrCodeNotFound            = errors.New("invite_code_not_found")
	ErrCodeGenerationExhausted = errors.New("code_generation_exhausted")
)
