package audit

import (
	"encoding/json"
	"time"

	auditDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/audit"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type EntityType string

const (
	EntityEmployee   EntityType = "Employee"
	EntitySite       EntityType = "Site"
	EntityAssignment EntityType = "Assignment"
	EntityTimesheet  EntityType = "Timesheet"
)

func ValidAction(a string) bool {
	switch Action(a) {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

func ValidEntity(e string) bool {
	switch EntityType(e) {
	case EntityEmployee, EntitySite, EntityAssignment, EntityTimesheet:
		return true
	}
	return false
}

type Entry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// Change is the {"old": ..., "new": ...} pair recorded for updates.
type Change struct {
	Old interface{} `json:"old"`
	New interface{} `json:"new"`
}

// FieldChange records a single changed field as {"<field>": {"old": ..., "new": ...}}.
func FieldChange(field string, oldValue, newValue interface{}) map[string]Change {
	return map[string]Change{field: {Old: oldValue, New: newValue}}
}

func FromDataModel(e *auditDatamodel.Entry) *Entry {
	entry := &Entry{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Actor:     e.Actor,
		Action:    e.Action,
		Entity:    e.Entity,
		EntityID:  e.EntityID,
	}
	if e.Details != "" {
		entry.Details = json.RawMessage(e.Details)
	}
	return entry
}
