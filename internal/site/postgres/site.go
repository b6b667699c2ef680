package postgres

import (
	"context"
	"errors"
	"strings"

	siteDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/site"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) site.RepositoryAPI {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) GetByID(ctx context.Context, id string) (*siteDatamodel.Site, error) {
	var s siteDatamodel.Site
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) GetByName(ctx context.Context, name string) (*siteDatamodel.Site, error) {
	var s siteDatamodel.Site
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SiteRepository) List(ctx context.Context, filter site.ListFilter) ([]*siteDatamodel.Site, error) {
	q := r.db.WithContext(ctx).Model(&siteDatamodel.Site{})
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ?", like, like)
	}

	var sites []*siteDatamodel.Site
	err := q.Order("name ASC").Find(&sites).Error
	return sites, err
}

func (r *SiteRepository) Create(ctx context.Context, s *siteDatamodel.Site) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SiteRepository) Update(ctx context.Context, s *siteDatamodel.Site) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *SiteRepository) DeleteUnreferenced(ctx context.Context, id string) (bool, int64, error) {
	var (
		found      bool
		dependents int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row siteDatamodel.Site
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = true
		if err := tx.Table("timesheets").Where("site_id = ?", id).Count(&dependents).Error; err != nil {
			return err
		}
		if dependents > 0 {
			return nil
		}
		return tx.Delete(&siteDatamodel.Site{}, "id = ?", id).Error
	})
	return found, dependents, err
}

func (r *SiteRepository) HoursBySite(ctx context.Context, limit int) ([]site.SiteHours, error) {
	var rows []site.SiteHours
	err := r.db.WithContext(ctx).
		Table("timesheets").
		Select("site_name, SUM(hours) AS total_hours").
		Group("site_name").
		Order("total_hours DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *SiteRepository) TimesheetHours(ctx context.Context, siteID string) ([]site.DatedHours, error) {
	var rows []site.DatedHours
	err := r.db.WithContext(ctx).
		Table("timesheets").
		Select("date, hours").
		Where("site_id = ?", siteID).
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}
