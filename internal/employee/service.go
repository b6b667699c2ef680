package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByFullName(ctx context.Context, fullName string) (*employeeDatamodel.Employee, error)
	List(ctx context.Context, filter ListFilter) ([]*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, e *employeeDatamodel.Employee) error
	// DeleteUnreferenced removes the employee only when no timesheet references it,
	// returning the number of referencing timesheets otherwise.
	// found is false when the row is already gone.
	DeleteUnreferenced(ctx context.Context, id string) (found bool, dependents int64, err error)
}

type Service struct {
	repo   RepositoryAPI
	audit  audit.Sink
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, sink audit.Sink, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  sink,
		clock:  clk,
		logger: logger,
	}
}

func notFound(id string) error {
	return internal.NewNotFoundError(fmt.Sprintf("employee %s not found", id), internal.ErrCodeEmployeeNotFound)
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	if !validation.IsUUID(id) {
		return nil, notFound(id)
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, internal.NewStoreError("failed to load employee", err)
	}
	if row == nil {
		return nil, notFound(id)
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Employee, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewStoreError("failed to list employees", err)
	}

	employees := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, FromDataModel(row))
	}
	return employees, nil
}

// checkDuplicateName rejects a full name already used by another employee.
func (s *Service) checkDuplicateName(ctx context.Context, fullName, selfID string) error {
	existing, err := s.repo.GetByFullName(ctx, fullName)
	if err != nil {
		s.logger.Error("failed to check employee name", "error", err, "full_name", fullName)
		return internal.NewStoreError("failed to check employee name", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError(
			fmt.Sprintf("an employee named %q already exists", fullName),
			internal.ErrCodeDuplicateName,
			existing.ID,
		)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(ctx, dto.FullName, ""); err != nil {
		return nil, err
	}

	active := true
	if dto.Active != nil {
		active = *dto.Active
	}

	e := &Employee{
		FullName:  dto.FullName,
		Role:      dto.Role,
		Email:     dto.Email,
		Phone:     dto.Phone,
		Active:    active,
		CreatedAt: s.clock.Now(),
		CreatedBy: internal.ActorFromContext(ctx),
	}

	row := ToDataModel(e)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create employee", "error", err, "full_name", dto.FullName)
		return nil, internal.NewStoreError("failed to create employee", err)
	}
	e.ID = row.ID

	s.audit.Record(ctx, audit.ActionCreate, audit.EntityEmployee, e.ID, e)
	s.logger.Info("employee created", "employee_id", e.ID, "full_name", e.FullName)
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.FullName != before.FullName {
		if err := s.checkDuplicateName(ctx, dto.FullName, id); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	after := *before
	after.FullName = dto.FullName
	after.Role = dto.Role
	after.Email = dto.Email
	after.Phone = dto.Phone
	after.Active = dto.Active
	after.UpdatedAt = &now

	if err := s.repo.Update(ctx, ToDataModel(&after)); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewStoreError("failed to update employee", err)
	}

	s.audit.Record(ctx, audit.ActionUpdate, audit.EntityEmployee, id, audit.Change{Old: before, New: &after})
	return &after, nil
}

// ToggleActive flips the active flag unconditionally.
func (s *Service) ToggleActive(ctx context.Context, id string) (*Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := e.Active
	e.ToggleActive(s.clock.Now())

	if err := s.repo.Update(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("failed to toggle employee", "error", err, "employee_id", id)
		return nil, internal.NewStoreError("failed to update employee", err)
	}

	s.audit.Record(ctx, audit.ActionUpdate, audit.EntityEmployee, id, audit.FieldChange("active", previous, e.Active))
	return e, nil
}

// Delete hard-removes an employee that no timesheet references.
func (s *Service) Delete(ctx context.Context, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	found, dependents, err := s.repo.DeleteUnreferenced(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewStoreError("failed to delete employee", err)
	}
	if !found {
		// removed concurrently since Get
		return notFound(id)
	}
	if dependents > 0 {
		return internal.NewDependencyConflictError(
			fmt.Sprintf("employee %q has %d timesheet(s); deactivate it instead", e.FullName, dependents),
			dependents,
		)
	}

	s.audit.Record(ctx, audit.ActionDelete, audit.EntityEmployee, id, e)
	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	employees, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByRole: make(map[string]int, len(Roles))}
	for _, role := range Roles {
		stats.ByRole[role] = 0
	}
	for _, e := range employees {
		stats.Total++
		if e.Active {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.ByRole[e.Role]++
	}
	return stats, nil
}
