package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID        string     `gorm:"primaryKey;type:uuid"`
	FullName  string     `gorm:"column:full_name;not null"`
	Role      string     `gorm:"column:role;not null"`
	Email     string     `gorm:"column:email"`
	Phone     string     `gorm:"column:phone"`
	Active    bool       `gorm:"column:active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	CreatedBy string     `gorm:"column:created_by"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
