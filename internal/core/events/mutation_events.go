package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeEntityMutated = "entity.mutated"

// MutationEvent describes one committed create, update or delete.
type MutationEvent struct {
	BaseEvent
	Actor    string      `json:"actor"`
	Action   string      `json:"action"`
	Entity   string      `json:"entity"`
	EntityID string      `json:"entity_id"`
	Details  interface{} `json:"details"`
}

func NewMutationEvent(at time.Time, actor, action, entity, entityID string, details interface{}) *MutationEvent {
	return &MutationEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeEntityMutated,
			Timestamp: at,
			Data: map[string]interface{}{
				"actor":     actor,
				"action":    action,
				"entity":    entity,
				"entity_id": entityID,
			},
		},
		Actor:    actor,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	}
}
