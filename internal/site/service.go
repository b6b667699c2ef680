package site

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/common/validation"
	siteDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/site"
	"github.com/shopspring/decimal"
)

const leaderboardSize = 10

type RepositoryAPI interface {
	GetByID(ctx context.Context, id string) (*siteDatamodel.Site, error)
	GetByName(ctx context.Context, name string) (*siteDatamodel.Site, error)
	List(ctx context.Context, filter ListFilter) ([]*siteDatamodel.Site, error)
	Create(ctx context.Context, s *siteDatamodel.Site) error
	Update(ctx context.Context, s *siteDatamodel.Site) error
	// DeleteUnreferenced removes the site only when no timesheet references it,
	// returning the number of referencing timesheets otherwise.
	// found is false when the row is already gone.
	DeleteUnreferenced(ctx context.Context, id string) (found bool, dependents int64, err error)
	HoursBySite(ctx context.Context, limit int) ([]SiteHours, error)
	TimesheetHours(ctx context.Context, siteID string) ([]DatedHours, error)
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
	return internal.NewNotFoundError(fmt.Sprintf("site %s not found", id), internal.ErrCodeSiteNotFound)
}

func (s *Service) Get(ctx context.Context, id string) (*Site, error) {
	if !validation.IsUUID(id) {
		return nil, notFound(id)
	}
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get site", "error", err, "site_id", id)
		return nil, internal.NewStoreError("failed to load site", err)
	}
	if row == nil {
		return nil, notFound(id)
	}
	return FromDataModel(row), nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Site, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list sites", "error", err)
		return nil, internal.NewStoreError("failed to list sites", err)
	}

	sites := make([]*Site, 0, len(rows))
	for _, row := range rows {
		sites = append(sites, FromDataModel(row))
	}
	return sites, nil
}

func (s *Service) checkDuplicateName(ctx context.Context, name, selfID string) error {
	existing, err := s.repo.GetByName(ctx, name)
	if err != nil {
		s.logger.Error("failed to check site name", "error", err, "name", name)
		return internal.NewStoreError("failed to check site name", err)
	}
	if existing != nil && existing.ID != selfID {
		return internal.NewConflictError(
			fmt.Sprintf("a site named %q already exists", name),
			internal.ErrCodeDuplicateName,
			existing.ID,
		)
	}
	return nil
}

func (s *Service) Create(ctx context.Context, dto CreateSiteDTO) (*Site, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkDuplicateName(ctx, dto.Name, ""); err != nil {
		return nil, err
	}

	active := true
	if dto.Active != nil {
		active = *dto.Active
	}

	site := &Site{
		Name:      dto.Name,
		Location:  dto.Location,
		Active:    active,
		CreatedAt: s.clock.Now(),
		CreatedBy: internal.ActorFromContext(ctx),
	}

	row := ToDataModel(site)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.Error("failed to create site", "error", err, "name", dto.Name)
		return nil, internal.NewStoreError("failed to create site", err)
	}
	site.ID = row.ID

	s.audit.Record(ctx, audit.ActionCreate, audit.EntitySite, site.ID, site)
	s.logger.Info("site created", "site_id", site.ID, "name", site.Name)
	return site, nil
}

func (s *Service) Update(ctx context.Context, id string, dto UpdateSiteDTO) (*Site, error) {
	dto.Normalize()
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	before, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto.Name != before.Name {
		if err := s.checkDuplicateName(ctx, dto.Name, id); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	after := *before
	after.Name = dto.Name
	after.Location = dto.Location
	after.Active = dto.Active
	after.UpdatedAt = &now

	if err := s.repo.Update(ctx, ToDataModel(&after)); err != nil {
		s.logger.Error("failed to update site", "error", err, "site_id", id)
		return nil, internal.NewStoreError("failed to update site", err)
	}

	s.audit.Record(ctx, audit.ActionUpdate, audit.EntitySite, id, audit.Change{Old: before, New: &after})
	return &after, nil
}

func (s *Service) ToggleActive(ctx context.Context, id string) (*Site, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := site.Active
	site.ToggleActive(s.clock.Now())

	if err := s.repo.Update(ctx, ToDataModel(site)); err != nil {
		s.logger.Error("failed to toggle site", "error", err, "site_id", id)
		return nil, internal.NewStoreError("failed to update site", err)
	}

	s.audit.Record(ctx, audit.ActionUpdate, audit.EntitySite, id, audit.FieldChange("active", previous, site.Active))
	return site, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	site, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	found, dependents, err := s.repo.DeleteUnreferenced(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete site", "error", err, "site_id", id)
		return internal.NewStoreError("failed to delete site", err)
	}
	if !found {
		// removed concurrently since Get
		return notFound(id)
	}
	if dependents > 0 {
		return internal.NewDependencyConflictError(
			fmt.Sprintf("site %q has %d timesheet(s); deactivate it instead", site.Name, dependents),
			dependents,
		)
	}

	s.audit.Record(ctx, audit.ActionDelete, audit.EntitySite, id, site)
	s.logger.Info("site deleted", "site_id", id)
	return nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	sites, err := s.List(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}

	stats := &Stats{Total: len(sites)}
	for _, site := range sites {
		if site.Active {
			stats.Active++
		} else {
			stats.Inactive++
		}
	}
	return stats, nil
}

// Leaderboard returns the sites with the most logged hours.
func (s *Service) Leaderboard(ctx context.Context) ([]SiteHours, error) {
	rows, err := s.repo.HoursBySite(ctx, leaderboardSize)
	if err != nil {
		s.logger.Error("failed to load site hours", "error", err)
		return nil, internal.NewStoreError("failed to load site hours", err)
	}
	return rows, nil
}

// MonthlyHours sums one site's hours per YYYY-MM, oldest month first.
func (s *Service) MonthlyHours(ctx context.Context, id string) ([]MonthHours, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.repo.TimesheetHours(ctx, id)
	if err != nil {
		s.logger.Error("failed to load site timesheets", "error", err, "site_id", id)
		return nil, internal.NewStoreError("failed to load site timesheets", err)
	}

	totals := make(map[string]decimal.Decimal)
	for _, row := range rows {
		month := row.Date.Format("2006-01")
		totals[month] = totals[month].Add(row.Hours)
	}

	months := make([]MonthHours, 0, len(totals))
	for month, total := range totals {
		months = append(months, MonthHours{Month: month, TotalHours: total})
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months, nil
}
