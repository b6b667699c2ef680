package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal/assignment"
	assignmentDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/assignment"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.RepositoryAPI {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id string) (*assignmentDatamodel.Assignment, error) {
	var a assignmentDatamodel.Assignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func pairQuery(db *gorm.DB, employeeID, siteID string) *gorm.DB {
	return db.Where("employee_id = ? AND site_id = ?", employeeID, siteID).Order("created_at ASC, id ASC")
}

func (r *AssignmentRepository) ListByEmployeeAndSite(ctx context.Context, employeeID, siteID string) ([]*assignmentDatamodel.Assignment, error) {
	var rows []*assignmentDatamodel.Assignment
	err := pairQuery(r.db.WithContext(ctx), employeeID, siteID).Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) List(ctx context.Context, filter assignment.ListFilter) ([]*assignmentDatamodel.Assignment, error) {
	q := r.db.WithContext(ctx).Model(&assignmentDatamodel.Assignment{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	switch filter.Status {
	case assignment.StatusActive:
		q = q.Where("end_date IS NULL")
	case assignment.StatusClosed:
		q = q.Where("end_date IS NOT NULL")
	}

	var rows []*assignmentDatamodel.Assignment
	err := q.Order("start_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *AssignmentRepository) CreateChecked(ctx context.Context, a *assignmentDatamodel.Assignment, check func([]*assignmentDatamodel.Assignment) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// concurrent creates for the same pair queue here until commit
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", a.EmployeeID+"/"+a.SiteID).Error; err != nil {
				return err
			}
		}

		var existing []*assignmentDatamodel.Assignment
		if err := pairQuery(tx, a.EmployeeID, a.SiteID).Find(&existing).Error; err != nil {
			return err
		}
		if err := check(existing); err != nil {
			return err
		}
		return tx.Create(a).Error
	})
}

func (r *AssignmentRepository) CloseOpen(ctx context.Context, id string, endDate time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&assignmentDatamodel.Assignment{}).
		Where("id = ? AND end_date IS NULL", id).
		Update("end_date", endDate)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *AssignmentRepository) DeleteUnreferenced(ctx context.Context, id string) (bool, int64, error) {
	var (
		found      bool
		dependents int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row assignmentDatamodel.Assignment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Table("timesheets").
			Where("employee_id = ? AND site_id = ?", row.EmployeeID, row.SiteID).
			Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return nil
		}
		return tx.Delete(&assignmentDatamodel.Assignment{}, "id = ?", id).Error
	})
	return found, dependents, err
}
