package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Timesheet rows are unique per (employee_id, date); see db/migrations.
type Timesheet struct {
	ID           string          `gorm:"primaryKey;type:uuid"`
	EmployeeID   string          `gorm:"column:employee_id;not null;uniqueIndex:uq_timesheets_employee_date"`
	EmployeeName string          `gorm:"column:employee_name"`
	SiteID       string          `gorm:"column:site_id;not null"`
	SiteName     string          `gorm:"column:site_name"`
	Date         time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_timesheets_employee_date"`
	Hours        decimal.Decimal `gorm:"column:hours;type:numeric(4,2);not null"`
	Status       string          `gorm:"column:status;not null"`
	Note         string          `gorm:"column:note"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	CreatedBy    string          `gorm:"column:created_by"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
