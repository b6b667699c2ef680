package postgres

import (
	"context"
	"strings"

	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	auditDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/audit"
	"gorm.io/gorm"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) audit.RepositoryAPI {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *auditDatamodel.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]*auditDatamodel.Entry, error) {
	q := r.db.WithContext(ctx).Model(&auditDatamodel.Entry{})
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.DateFrom != nil {
		q = q.Where("timestamp >= ?", *filter.DateFrom)
	}
	if filter.Actor != "" {
		q = q.Where("LOWER(actor) LIKE ?", "%"+strings.ToLower(filter.Actor)+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var entries []*auditDatamodel.Entry
	err := q.Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

func (r *AuditRepository) ActorActivity(ctx context.Context, limit int) ([]audit.ActorActivity, error) {
	var rows []audit.ActorActivity
	err := r.db.WithContext(ctx).
		Model(&auditDatamodel.Entry{}).
		Select("actor, COUNT(*) AS count").
		Group("actor").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
