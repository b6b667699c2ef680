package audit

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Entry struct {
	ID        string    `gorm:"primaryKey;type:uuid"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`
	Actor     string    `gorm:"column:actor;not null"`
	Action    string    `gorm:"column:action;not null"`
	Entity    string    `gorm:"column:entity;not null"`
	EntityID  string    `gorm:"column:entity_id;not null"`
	Details   string    `gorm:"column:details;type:jsonb"`
}

func (Entry) TableName() string {
	return "audit_log"
}

func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
