package assignment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assignment rows carry name snapshots taken at creation; they are not refreshed on rename.
type Assignment struct {
	ID           string     `gorm:"primaryKey;type:uuid"`
	EmployeeID   string     `gorm:"column:employee_id;not null;index:idx_assignments_pair"`
	EmployeeName string     `gorm:"column:employee_name"`
	SiteID       string     `gorm:"column:site_id;not null;index:idx_assignments_pair"`
	SiteName     string     `gorm:"column:site_name"`
	StartDate    time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate      *time.Time `gorm:"column:end_date;type:date"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	CreatedBy    string     `gorm:"column:created_by"`
}

func (Assignment) TableName() string {
	return "assignments"
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
