package postgres

import (
	"context"
	"errors"
	"strings"

	employeeDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByFullName(ctx context.Context, fullName string) (*employeeDatamodel.Employee, error) {
	var e employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("full_name = ?", fullName).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListFilter) ([]*employeeDatamodel.Employee, error) {
	q := r.db.WithContext(ctx).Model(&employeeDatamodel.Employee{})
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var employees []*employeeDatamodel.Employee
	err := q.Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) Create(ctx context.Context, e *employeeDatamodel.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) Update(ctx context.Context, e *employeeDatamodel.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// DeleteUnreferenced locks the employee row, counts referencing timesheets and deletes only when none exist.
func (r *EmployeeRepository) DeleteUnreferenced(ctx context.Context, id string) (bool, int64, error) {
	var (
		found      bool
		dependents int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row employeeDatamodel.Employee
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Table("timesheets").Where("employee_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return nil
		}
		return tx.Delete(&employeeDatamodel.Employee{}, "id = ?", id).Error
	})
	return found, dependents, err
}
