package timesheet

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

type CreateTimesheetDTO struct {
	EmployeeID string          `json:"employee_id"`
	SiteID     string          `json:"site_id"`
	Date       calendar.Date   `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
	Status     string          `json:"status"`
	Note       string          `json:"note"`
}

func (dto *CreateTimesheetDTO) Normalize() {
	dto.Status = strings.ToLower(strings.TrimSpace(dto.Status))
	dto.Note = strings.TrimSpace(dto.Note)
}

func (dto CreateTimesheetDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required().UUID()
	v.Field("site_id", dto.SiteID).Required().UUID()
	v.Field("date", dto.Date.Time).Required()
	v.Field("hours", dto.Hours).
		DecimalBetween(MinHours, MaxHours, errors.ErrCodeInvalidHours).
		MaxDecimalPlaces(HoursPlaces, errors.ErrCodeInvalidHours)
	v.Field("status", dto.Status).Required().OneOf(errors.ErrCodeInvalidStatus, Statuses...)
	v.Field("note", dto.Note).MaxLength(1000)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ListFilter struct {
	EmployeeID string
	SiteID     string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (f ListFilter) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", f.EmployeeID).UUID()
	v.Field("site_id", f.SiteID).UUID()
	v.Field("status", f.Status).OneOf(errors.ErrCodeInvalidStatus, Statuses...)
	if f.DateFrom != nil {
		v.Field("date_to", f.DateTo).NotBefore(*f.DateFrom, "date_from")
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type TimesheetResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	SiteID       string          `json:"site_id"`
	SiteName     string          `json:"site_name"`
	Date         calendar.Date   `json:"date"`
	Hours        decimal.Decimal `json:"hours"`
	Status       string          `json:"status"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
	CreatedBy    string          `json:"created_by"`
}

type ListResponse struct {
	Timesheets []TimesheetResponse `json:"timesheets"`
	Count      int                 `json:"count"`
}

type ExistsResponse struct {
	Exists      bool   `json:"exists"`
	TimesheetID string `json:"timesheet_id,omitempty"`
}

type Stats struct {
	Total        int             `json:"total"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	PresentDays  int             `json:"present_days"`
	Absences     int             `json:"absences"`
	AverageHours decimal.Decimal `json:"average_hours"`
}

type WeeklyCell struct {
	TimesheetID string          `json:"timesheet_id"`
	Status      string          `json:"status"`
	Hours       decimal.Decimal `json:"hours"`
	SiteName    string          `json:"site_name"`
}

// WeeklyRow holds one employee's week, Monday first. Days without a timesheet are nil.
type WeeklyRow struct {
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	Days         [7]*WeeklyCell `json:"days"`
}

type WeeklyGrid struct {
	WeekStart calendar.Date   `json:"week_start"`
	WeekEnd   calendar.Date   `json:"week_end"`
	Dates     []calendar.Date `json:"dates"`
	Rows      []WeeklyRow     `json:"rows"`
}
