package audit

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/events"
)

// Sink is what domain services call after every committed mutation.
type Sink interface {
	Record(ctx context.Context, action Action, entity EntityType, entityID string, details interface{})
}

// Recorder publishes mutations on the event bus. Audit writes are best effort:
// the primary mutation is already committed, so a failed write is logged and swallowed.
type Recorder struct {
	publisher events.Publisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewRecorder(publisher events.Publisher, clk clock.Clock, logger *slog.Logger) *Recorder {
	return &Recorder{
		publisher: publisher,
		clock:     clk,
		logger:    logger,
	}
}

func (r *Recorder) Record(ctx context.Context, action Action, entity EntityType, entityID string, details interface{}) {
	actor := internal.ActorFromContext(ctx)
	event := events.NewMutationEvent(r.clock.Now(), actor, string(action), string(entity), entityID, details)

	if err := r.publisher.PublishSync(ctx, event); err != nil {
		r.logger.Error("audit write failed, mutation kept",
			"actor", actor,
			"action", action,
			"entity", entity,
			"entity_id", entityID,
			"error", err)
	}
}
