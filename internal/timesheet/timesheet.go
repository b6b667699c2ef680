package timesheet

import (
	"errors"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	timesheetDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/timesheet"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusMedical = "medical"
	StatusLeave   = "leave"
	StatusRemote  = "remote"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusMedical, StatusLeave, StatusRemote}

// ErrDuplicate is returned by repositories when the (employee_id, date) unique index rejects an insert.
var ErrDuplicate = errors.New("timesheet already exists for this employee and date")

var (
	MinHours = decimal.Zero
	MaxHours = decimal.NewFromInt(24)
)

// HoursPlaces matches the NUMERIC(4,2) hours column.
const HoursPlaces = 2

// IsAbsence reports whether status counts as an absence. Remote work does not.
func IsAbsence(status string) bool {
	switch status {
	case StatusAbsent, StatusMedical, StatusLeave:
		return true
	}
	return false
}

// NormalizeHours keeps hours only for present days.
func NormalizeHours(status string, hours decimal.Decimal) decimal.Decimal {
	if status != StatusPresent {
		return decimal.Zero
	}
	return hours
}

type Timesheet struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	SiteID       string
	SiteName     string
	Date         time.Time
	Hours        decimal.Decimal
	Status       string
	Note         string
	CreatedAt    time.Time
	CreatedBy    string
}

func (t *Timesheet) ToResponse() TimesheetResponse {
	return TimesheetResponse{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		SiteID:       t.SiteID,
		SiteName:     t.SiteName,
		Date:         calendar.NewDate(t.Date),
		Hours:        t.Hours,
		Status:       t.Status,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
		CreatedBy:    t.CreatedBy,
	}
}

func ToDataModel(t *Timesheet) *timesheetDatamodel.Timesheet {
	return &timesheetDatamodel.Timesheet{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		SiteID:       t.SiteID,
		SiteName:     t.SiteName,
		Date:         t.Date,
		Hours:        t.Hours,
		Status:       t.Status,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
		CreatedBy:    t.CreatedBy,
	}
}

func FromDataModel(t *timesheetDatamodel.Timesheet) *Timesheet {
	return &Timesheet{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		SiteID:       t.SiteID,
		SiteName:     t.SiteName,
		Date:         calendar.Day(t.Date),
		Hours:        t.Hours,
		Status:       t.Status,
		Note:         t.Note,
		CreatedAt:    t.CreatedAt,
		CreatedBy:    t.CreatedBy,
	}
}
