package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// UnknownExerciseLabel is rendered when an exercise type has no catalog entry.
const UnknownExerciseLabel = "N/A"

type Service interface {
	// ResolveLocation returns the active location or ErrInvalidLocation.
	ResolveLocation(ctx context.Context, crewID, locationID snowflake.ID) (*Location, error)
	// ExerciseLabels returns the id -> label mapping for the whole catalog.
	ExerciseLabels(ctx context.Context) (map[int]string, error)
}

var ErrInvalidLocation = errors.New("invalid_location")
