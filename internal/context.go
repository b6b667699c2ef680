package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextActorKey ctxKey = "actor"

// SystemActor is recorded when a mutation runs outside an authenticated request (seeders, CLI).
const SystemActor = "system"

// ActorFromContext returns the identity performing the current operation.
func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return SystemActor
	}
	if actor, ok := ctx.Value(ContextActorKey).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}

func ContextWithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, ContextActorKey, actor)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
