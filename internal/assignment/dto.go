package assignment

import (
	"time"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
)

type CreateAssignmentDTO struct {
	EmployeeID string         `json:"employee_id"`
	SiteID     string         `json:"site_id"`
	StartDate  calendar.Date  `json:"start_date"`
	EndDate    *calendar.Date `json:"end_date,omitempty"`
}

func (dto CreateAssignmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", dto.EmployeeID).Required().UUID()
	v.Field("site_id", dto.SiteID).Required().UUID()
	v.Field("start_date", dto.StartDate.Time).Required()
	v.Field("end_date", dto.EndDate.Ptr()).NotBefore(dto.StartDate.Time, "start_date")
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type CloseAssignmentDTO struct {
	EndDate calendar.Date `json:"end_date"`
}

func (dto CloseAssignmentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("end_date", dto.EndDate.Time).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// OverlapQuery is the input of the overlap check.
type OverlapQuery struct {
	EmployeeID string
	SiteID     string
	StartDate  time.Time
	EndDate    *time.Time
	ExcludeID  string
}

func (q OverlapQuery) Validate() error {
	v := validation.NewValidator()
	v.Field("employee_id", q.EmployeeID).Required().UUID()
	v.Field("site_id", q.SiteID).Required().UUID()
	v.Field("start_date", q.StartDate).Required()
	v.Field("exclude_id", q.ExcludeID).UUID()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type OverlapResult struct {
	Overlap       bool   `json:"overlap"`
	ConflictingID string `json:"conflicting_id,omitempty"`
}

type ListFilter struct {
	EmployeeID string
	SiteID     string
	Status     string
}

func (f ListFilter) Validate() error {
	if f.Status != "" && f.Status != StatusActive && f.Status != StatusClosed {
		return errors.NewValidationFieldError("status", "status must be active or closed", errors.ErrCodeInvalidStatus)
	}
	v := validation.NewValidator()
	v.Field("employee_id", f.EmployeeID).UUID()
	v.Field("site_id", f.SiteID).UUID()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type AssignmentResponse struct {
	ID           string         `json:"id"`
	EmployeeID   string         `json:"employee_id"`
	EmployeeName string         `json:"employee_name"`
	SiteID       string         `json:"site_id"`
	SiteName     string         `json:"site_name"`
	StartDate    calendar.Date  `json:"start_date"`
	EndDate      *calendar.Date `json:"end_date"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	CreatedBy    string         `json:"created_by"`
}

type ListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Count       int                  `json:"count"`
}

type EmployeeSummary struct {
	EmployeeID string   `json:"employee_id"`
	Active     int      `json:"active"`
	Completed  int      `json:"completed"`
	Sites      []string `json:"sites"`
}

type SiteSummary struct {
	SiteID    string   `json:"site_id"`
	Active    int      `json:"active"`
	Completed int      `json:"completed"`
	Employees []string `json:"employees"`
}
