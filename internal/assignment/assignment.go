package assignment

import (
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	assignmentDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/assignment"
)

const (
	StatusActive = "active"
	StatusClosed = "closed"
)

// Assignment links an employee to a site over an inclusive date range.
// A nil EndDate means the assignment is open-ended and still active.
// EmployeeName and SiteName are snapshots taken at creation.
type Assignment struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	SiteID       string
	SiteName     string
	StartDate    time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	CreatedBy    string
}

func (a *Assignment) IsOpen() bool {
	return a.EndDate == nil
}

func (a *Assignment) Status() string {
	if a.IsOpen() {
		return StatusActive
	}
	return StatusClosed
}

func (a *Assignment) ToResponse() AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		SiteID:       a.SiteID,
		SiteName:     a.SiteName,
		StartDate:    calendar.NewDate(a.StartDate),
		Status:       a.Status(),
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
	if a.EndDate != nil {
		end := calendar.NewDate(*a.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func ToDataModel(a *Assignment) *assignmentDatamodel.Assignment {
	return &assignmentDatamodel.Assignment{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		SiteID:       a.SiteID,
		SiteName:     a.SiteName,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}

func FromDataModel(a *assignmentDatamodel.Assignment) *Assignment {
	out := &Assignment{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		SiteID:       a.SiteID,
		SiteName:     a.SiteName,
		StartDate:    calendar.Day(a.StartDate),
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
	if a.EndDate != nil && !a.EndDate.IsZero() {
		end := calendar.Day(*a.EndDate)
		out.EndDate = &end
	}
	return out
}
