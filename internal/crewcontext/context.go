package crewcontext

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// CrewContextKey is the request context key for the active crew ID.
type CrewContextKey struct{}

// UserContextKey is the request context key for the acting user ID.
type UserContextKey struct{}

// WithCrewID stores the crew ID in the context.
func WithCrewID(ctx context.Context, crewID snowflake.ID) context.Context {
	return context.WithValue(ctx, CrewContextKey{}, crewID)
}

// CrewIDFromContext returns the crew ID from context, if set.
func CrewIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	return idFromValue(ctx.Value(CrewContextKey{}))
}

// WithUserID stores the acting user ID in the context.
func WithUserID(ctx context.Context, userID snowflake.ID) context.Context {
	return context.WithValue(ctx, UserContextKey{}, userID)
}

// UserIDFromContext returns the acting user ID from context, if set.
func UserIDFromContext(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	return idFromValue(ctx.Value(UserContextKey{}))
}

func idFromValue(value any) (snowflake.ID, bool) {
	switch typed := value.(type) {
	case int64:
		return snowflake.ID(typed), true
	case snowflake.ID:
		return typed, true
	case string:
		parsed, err := snowflake.ParseString(strings.TrimSpace(typed))
		if err == nil {
			return parsed, true
		}
	}
	return 0, false
}
