package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
	assignmentDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/assignment"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
)

const overlapMessage = "an assignment overlapping this interval already exists for this employee at this site"

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*assignmentDatamodel.Assignment, error)
	ListByEmployeeAndSite(ctx context.Context, employeeID, siteID string) ([]*assignmentDatamodel.Assignment, error)
	List(ctx context.Context, filter ListFilter) ([]*assignmentDatamodel.Assignment, error)
	// CreateChecked loads the pair's assignments, runs check over them and inserts a only when
	// check returns nil. Both steps run in one transaction serialized per (employee, site) pair;
	// the error from check is returned unchanged.
	CreateChecked(ctx context.Context, a *assignmentDatamodel.Assignment, check func(existing []*assignmentDatamodel.Assignment) error) error
	// CloseOpen sets end_date on an open assignment and reports whether a row was changed.
	CloseOpen(ctx context.Context, id string, endDate time.Time) (bool, error)
	// DeleteUnreferenced removes the assignment only when no timesheet references its
	// employee+site pair, returning the number of such timesheets otherwise.
	// found is false when the row is already gone.
	DeleteUnreferenced(ctx context.Context, id string) (found bool, dependents int64, err error)
}

type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (*employee.Employee, error)
}

type SiteDirectory interface {
	Get(ctx context.Context, id string) (*site.Site, error)
}

type Service struct {
	repo      RepositoryAPI
	employees EmployeeDirectory
	sites     SiteDirectory
	audit     audit.Sink
	clock     clock.Clock
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, employees EmployeeDirectory, sites SiteDirectory, sink audit.Sink, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		sites:     sites,
		audit:     sink,
		clock:     clk,
		logger:    logger,
	}
}

func notFound(id string) error {
	return internal.NewNotFoundError(fmt.Sprintf("assignment %s not found", id), internal.ErrCodeAssignmentNotFound)
}

func overlapError(conflicting *Assignment) error {
	return internal.NewConflictError(overlapMessage, internal.ErrCodeAssignmentOverlap, conflicting.ID)
}

func fromDataModels(rows []*assignmentDatamodel.Assignment) []*Assignment {
	out := make([]*Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}

func (s *Service) Get(ctx context.Context, id string) (*Assignment, error) {
	if !validation.IsUUID(id) {
		return nil, notFound(id)
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get assignment", "error", err, "assignment_id", id)
		return nil, internal.NewStoreError("failed to load assignment", err)
	}
	if row == nil {
		return nil, notFound(id)
	}
	return FromDataModel(row), nil
}

// HasOverlap reports whether [start, end] collides with an existing assignment of the same
// employee at the same site, and which one. end == nil means open-ended.
func (s *Service) HasOverlap(ctx context.Context, q OverlapQuery) (bool, string, error) {
	if err := q.Validate(); err != nil {
		return false, "", err
	}

	rows, err := s.repo.ListByEmployeeAndSite(ctx, q.EmployeeID, q.SiteID)
	if err != nil {
		s.logger.Error("failed to load assignments for overlap check", "error", err,
			"employee_id", q.EmployeeID, "site_id", q.SiteID)
		return false, "", internal.NewStoreError("failed to check assignment overlap", err)
	}

	conflict := FindOverlap(fromDataModels(rows), Interval{Start: q.StartDate, End: q.EndDate}, q.ExcludeID, s.clock.Now())
	if conflict == nil {
		return false, "", nil
	}
	return true, conflict.ID, nil
}

func (s *Service) Create(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employees.Get(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.Active {
		return nil, internal.NewValidationFieldError("employee_id",
			fmt.Sprintf("employee %q is inactive", emp.FullName), internal.ErrCodeInactiveEntity)
	}

	st, err := s.sites.Get(ctx, dto.SiteID)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, internal.NewValidationFieldError("site_id",
			fmt.Sprintf("site %q is inactive", st.Name), internal.ErrCodeInactiveEntity)
	}

	a := &Assignment{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		SiteID:       st.ID,
		SiteName:     st.Name,
		StartDate:    calendar.Day(dto.StartDate.Time),
		EndDate:      dto.EndDate.Ptr(),
		CreatedAt:    s.clock.Now(),
		CreatedBy:    internal.ActorFromContext(ctx),
	}
	candidate := Interval{Start: a.StartDate, End: a.EndDate}

	row := ToDataModel(a)
	err = s.repo.CreateChecked(ctx, row, func(existing []*assignmentDatamodel.Assignment) error {
		if conflict := FindOverlap(fromDataModels(existing), candidate, "", s.clock.Now()); conflict != nil {
			return overlapError(conflict)
		}
		return nil
	})
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create assignment", "error", err,
			"employee_id", a.EmployeeID, "site_id", a.SiteID)
		return nil, internal.NewStoreError("failed to create assignment", err)
	}
	a.ID = row.ID

	s.audit.Record(ctx, audit.ActionCreate, audit.EntityAssignment, a.ID, a.ToResponse())
	s.logger.Info("assignment created", "assignment_id", a.ID, "employee_id", a.EmployeeID, "site_id", a.SiteID)
	return a, nil
}

// Close ends an active assignment. There is no way back to active.
func (s *Service) Close(ctx context.Context, id string, dto CloseAssignmentDTO) (*Assignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsOpen() {
		return nil, internal.NewValidationError(
			fmt.Sprintf("assignment %s is already closed", id), internal.ErrCodeAlreadyClosed)
	}

	end := calendar.Day(dto.EndDate.Time)
	if end.Before(a.StartDate) {
		return nil, internal.NewValidationFieldError("end_date",
			"end_date must be on or after start_date", internal.ErrCodeInvalidDateRange)
	}

	changed, err := s.repo.CloseOpen(ctx, id, end)
	if err != nil {
		s.logger.Error("failed to close assignment", "error", err, "assignment_id", id)
		return nil, internal.NewStoreError("failed to close assignment", err)
	}
	if !changed {
		// closed concurrently between the read and the write
		return nil, internal.NewValidationError(
			fmt.Sprintf("assignment %s is already closed", id), internal.ErrCodeAlreadyClosed)
	}
	a.EndDate = &end

	s.audit.Record(ctx, audit.ActionUpdate, audit.EntityAssignment, id,
		audit.FieldChange("end_date", nil, calendar.Format(end)))
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	found, dependents, err := s.repo.DeleteUnreferenced(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete assignment", "error", err, "assignment_id", id)
		return internal.NewStoreError("failed to delete assignment", err)
	}
	if !found {
		// removed concurrently since Get
		return notFound(id)
	}
	if dependents > 0 {
		return internal.NewDependencyConflictError(
			fmt.Sprintf("%s has %d timesheet(s) at %s; close the assignment instead", a.EmployeeName, dependents, a.SiteName),
			dependents,
		)
	}

	s.audit.Record(ctx, audit.ActionDelete, audit.EntityAssignment, id, a.ToResponse())
	s.logger.Info("assignment deleted", "assignment_id", id)
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Assignment, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list assignments", "error", err)
		return nil, internal.NewStoreError("failed to list assignments", err)
	}
	return fromDataModels(rows), nil
}

func (s *Service) EmployeeSummary(ctx context.Context, employeeID string) (*EmployeeSummary, error) {
	if _, err := s.employees.Get(ctx, employeeID); err != nil {
		return nil, err
	}
	assignments, err := s.List(ctx, ListFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, err
	}

	summary := &EmployeeSummary{EmployeeID: employeeID}
	names := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.IsOpen() {
			summary.Active++
		} else {
			summary.Completed++
		}
		names = append(names, a.SiteName)
	}
	summary.Sites = distinctSorted(names)
	return summary, nil
}

func (s *Service) SiteSummary(ctx context.Context, siteID string) (*SiteSummary, error) {
	if _, err := s.sites.Get(ctx, siteID); err != nil {
		return nil, err
	}
	assignments, err := s.List(ctx, ListFilter{SiteID: siteID})
	if err != nil {
		return nil, err
	}

	summary := &SiteSummary{SiteID: siteID}
	names := make([]string, 0, len(assignments))
	for _, a := range assignments {
		if a.IsOpen() {
			summary.Active++
		} else {
			summary.Completed++
		}
		names = append(names, a.EmployeeName)
	}
	summary.Employees = distinctSorted(names)
	return summary, nil
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
