package site

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Site struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	Name      string     `gorm:"column:name;not null"`
	Location  string     `gorm:"column:location"`
	Active    bool       `gorm:"column:active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	CreatedBy string     `gorm:"column:created_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Site) TableName() string {
	return "sites"
}

func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
