package postgres

import (
	"context"
	"errors"
	"time"

	timesheetDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/timesheet"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
	"gorm.io/gorm"
)

type TimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) timesheet.RepositoryAPI {
	return &TimesheetRepository{db: db}
}

func (r *TimesheetRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*timesheetDatamodel.Timesheet, error) {
	var t timesheetDatamodel.Timesheet
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TimesheetRepository) List(ctx context.Context, filter timesheet.ListFilter) ([]*timesheetDatamodel.Timesheet, error) {
	q := r.db.WithContext(ctx).Model(&timesheetDatamodel.Timesheet{})
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}

	var rows []*timesheetDatamodel.Timesheet
	err := q.Order("date DESC, employee_name ASC").Find(&rows).Error
	return rows, err
}

// Create relies on the unique (employee_id, date) index; the gorm session must run with TranslateError.
func (r *TimesheetRepository) Create(ctx context.Context, t *timesheetDatamodel.Timesheet) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return timesheet.ErrDuplicate
	}
	return err
}
