package timesheet

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
	timesheetDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/timesheet"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	"github.com/shopspring/decimal"
)

type RepositoryAPI interface {
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timesheetDatamodel.Timesheet, error)
	List(ctx context.Context, filter ListFilter) ([]*timesheetDatamodel.Timesheet, error)
	// Create returns ErrDuplicate when (employee_id, date) is already taken.
	Create(ctx context.Context, t *timesheetDatamodel.Timesheet) error
}

type EmployeeDirectory interface {
	Get(ctx context.Context, id string) (*employee.Employee, error)
	List(ctx context.Context, filter employee.ListFilter) ([]*employee.Employee, error)
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

func duplicateError(employeeName string, date time.Time, existingID string) error {
	return internal.NewConflictError(
		fmt.Sprintf("a timesheet for %s on %s already exists", employeeName, calendar.Format(date)),
		internal.ErrCodeDuplicateTimesheet,
		existingID,
	)
}

func (s *Service) find(ctx context.Context, employeeID string, date time.Time) (*timesheetDatamodel.Timesheet, error) {
	row, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, calendar.Day(date))
	if err != nil {
		s.logger.Error("failed to look up timesheet", "error", err, "employee_id", employeeID, "date", calendar.Format(date))
		return nil, internal.NewStoreError("failed to check timesheet", err)
	}
	return row, nil
}

// Exists reports whether employeeID already has a timesheet on date, and its id.
func (s *Service) Exists(ctx context.Context, employeeID string, date time.Time) (bool, string, error) {
	if employeeID == "" {
		return false, "", internal.NewValidationFieldError("employee_id", "employee_id is required", internal.ErrCodeValidationFailed)
	}
	if !validation.IsUUID(employeeID) {
		return false, "", internal.NewValidationFieldError("employee_id", "employee_id must be a valid id", internal.ErrCodeInvalidID)
	}
	if date.IsZero() {
		return false, "", internal.NewValidationFieldError("date", "date is required", internal.ErrCodeValidationFailed)
	}
	row, err := s.find(ctx, employeeID, date)
	if err != nil {
		return false, "", err
	}
	if row == nil {
		return false, "", nil
	}
	return true, row.ID, nil
}

func (s *Service) Create(ctx context.Context, dto CreateTimesheetDTO) (*Timesheet, error) {
	dto.Normalize()
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

	date := calendar.Day(dto.Date.Time)
	existing, err := s.find(ctx, emp.ID, date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, duplicateError(emp.FullName, date, existing.ID)
	}

	ts := &Timesheet{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		SiteID:       st.ID,
		SiteName:     st.Name,
		Date:         date,
		Hours:        NormalizeHours(dto.Status, dto.Hours),
		Status:       dto.Status,
		Note:         dto.Note,
		CreatedAt:    s.clock.Now(),
		CreatedBy:    internal.ActorFromContext(ctx),
	}

	row := ToDataModel(ts)
	if err := s.repo.Create(ctx, row); err != nil {
		if stderrors.Is(err, ErrDuplicate) {
			// lost the race to a concurrent insert; name the winner when possible
			winnerID := ""
			if winner, findErr := s.find(ctx, emp.ID, date); findErr == nil && winner != nil {
				winnerID = winner.ID
			}
			return nil, duplicateError(emp.FullName, date, winnerID)
		}
		s.logger.Error("failed to create timesheet", "error", err, "employee_id", emp.ID, "date", calendar.Format(date))
		return nil, internal.NewStoreError("failed to create timesheet", err)
	}
	ts.ID = row.ID

	s.audit.Record(ctx, audit.ActionCreate, audit.EntityTimesheet, ts.ID, ts.ToResponse())
	s.logger.Info("timesheet created", "timesheet_id", ts.ID, "employee_id", ts.EmployeeID, "date", calendar.Format(date))
	return ts, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Timesheet, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list timesheets", "error", err)
		return nil, internal.NewStoreError("failed to list timesheets", err)
	}

	out := make([]*Timesheet, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context, filter ListFilter) (*Stats, error) {
	timesheets, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Summarize(timesheets), nil
}

// Summarize computes totals; AverageHours is per present day.
func Summarize(timesheets []*Timesheet) *Stats {
	stats := &Stats{Total: len(timesheets), TotalHours: decimal.Zero, AverageHours: decimal.Zero}
	for _, t := range timesheets {
		stats.TotalHours = stats.TotalHours.Add(t.Hours)
		switch {
		case t.Status == StatusPresent:
			stats.PresentDays++
		case IsAbsence(t.Status):
			stats.Absences++
		}
	}
	if stats.PresentDays > 0 {
		stats.AverageHours = stats.TotalHours.Div(decimal.NewFromInt(int64(stats.PresentDays))).Round(2)
	}
	return stats
}

// WeeklyGrid lays out the Monday..Sunday week containing weekOf, one row per active employee.
func (s *Service) WeeklyGrid(ctx context.Context, weekOf time.Time) (*WeeklyGrid, error) {
	if weekOf.IsZero() {
		weekOf = s.clock.Now()
	}
	monday, sunday := calendar.WeekBounds(weekOf)

	timesheets, err := s.List(ctx, ListFilter{DateFrom: &monday, DateTo: &sunday})
	if err != nil {
		return nil, err
	}
	active := true
	employees, err := s.employees.List(ctx, employee.ListFilter{Active: &active})
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string][7]*WeeklyCell, len(employees))
	for _, t := range timesheets {
		idx := int(calendar.Day(t.Date).Sub(monday).Hours() / 24)
		if idx < 0 || idx > 6 {
			continue
		}
		cells := byEmployee[t.EmployeeID]
		cells[idx] = &WeeklyCell{TimesheetID: t.ID, Status: t.Status, Hours: t.Hours, SiteName: t.SiteName}
		byEmployee[t.EmployeeID] = cells
	}

	grid := &WeeklyGrid{
		WeekStart: calendar.NewDate(monday),
		WeekEnd:   calendar.NewDate(sunday),
		Rows:      make([]WeeklyRow, 0, len(employees)),
	}
	for _, d := range calendar.Days(monday, sunday) {
		grid.Dates = append(grid.Dates, calendar.NewDate(d))
	}
	for _, e := range employees {
		grid.Rows = append(grid.Rows, WeeklyRow{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName,
			Days:         byEmployee[e.ID],
		})
	}
	return grid, nil
}
