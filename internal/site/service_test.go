package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	siteDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/site"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

const (
	site1ID = "5e000000-0000-4000-8000-000000000001"
)

// Mock RepositoryAPI keeping rows in memory
type mockRepository struct {
	rows         map[string]*siteDatamodel.Site
	timesheets   map[string][]DatedHours
	leaderboard  []SiteHours
	nextID       int
	vanished     bool
	shouldFail   bool
	failingError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		rows:       map[string]*siteDatamodel.Site{},
		timesheets: map[string][]DatedHours{},
	}
}

func (m *mockRepository) SetShouldFail(err error) {
	m.shouldFail = true
	m.failingError = err
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*siteDatamodel.Site, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	if row, ok := m.rows[id]; ok {
		copied := *row
		return &copied, nil
	}
	return nil, nil
}

func (m *mockRepository) GetByName(ctx context.Context, name string) (*siteDatamodel.Site, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	for _, row := range m.rows {
		if row.Name == name {
			copied := *row
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*siteDatamodel.Site, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	var out []*siteDatamodel.Site
	for _, row := range m.rows {
		if filter.Active != nil && row.Active != *filter.Active {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, s *siteDatamodel.Site) error {
	if m.shouldFail {
		return m.failingError
	}
	m.nextID++
	s.ID = fmt.Sprintf("5e000000-0000-4000-8000-%012d", m.nextID)
	copied := *s
	m.rows[s.ID] = &copied
	return nil
}

func (m *mockRepository) Update(ctx context.Context, s *siteDatamodel.Site) error {
	if m.shouldFail {
		return m.failingError
	}
	copied := *s
	m.rows[s.ID] = &copied
	return nil
}

func (m *mockRepository) DeleteUnreferenced(ctx context.Context, id string) (bool, int64, error) {
	if m.shouldFail {
		return false, 0, m.failingError
	}
	if _, ok := m.rows[id]; !ok || m.vanished {
		return false, 0, nil
	}
	if n := len(m.timesheets[id]); n > 0 {
		return true, int64(n), nil
	}
	delete(m.rows, id)
	return true, 0, nil
}

func (m *mockRepository) HoursBySite(ctx context.Context, limit int) ([]SiteHours, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	if len(m.leaderboard) > limit {
		return m.leaderboard[:limit], nil
	}
	return m.leaderboard, nil
}

func (m *mockRepository) TimesheetHours(ctx context.Context, siteID string) ([]DatedHours, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	return m.timesheets[siteID], nil
}

type recordedEntry struct {
	Action   audit.Action
	Entity   audit.EntityType
	EntityID string
	Details  interface{}
}

type fakeSink struct {
	entries []recordedEntry
}

func (f *fakeSink) Record(ctx context.Context, action audit.Action, entity audit.EntityType, entityID string, details interface{}) {
	f.entries = append(f.entries, recordedEntry{Action: action, Entity: entity, EntityID: entityID, Details: details})
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func appError(err error) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	gomega.Expect(ok).To(gomega.BeTrue(), "expected an AppError, got %v", err)
	return appErr
}

func hoursOn(y int, m time.Month, d int, hours int64) DatedHours {
	return DatedHours{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Hours: decimal.NewFromInt(hours)}
}

var _ = ginkgo.Describe("SiteService", func() {
	var (
		service *Service
		repo    *mockRepository
		sink    *fakeSink
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		sink = &fakeSink{}
		ctx = internal.ContextWithActor(context.Background(), "office@example.com")
		service = NewService(repo, sink, clock.NewFixed(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)), testLogger)
	})

	create := func(name string) *Site {
		s, err := service.Create(ctx, CreateSiteDTO{Name: name, Location: "Jakarta"})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		return s
	}

	ginkgo.Describe("Create", func() {
		ginkgo.It("should trim, default to active and audit", func() {
			s, err := service.Create(ctx, CreateSiteDTO{Name: " Harbour Warehouse ", Location: "North Jakarta"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(s.ID).To(gomega.Equal(site1ID))
			gomega.Expect(s.Name).To(gomega.Equal("Harbour Warehouse"))
			gomega.Expect(s.Active).To(gomega.BeTrue())
			gomega.Expect(s.CreatedBy).To(gomega.Equal("office@example.com"))
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries[0].Entity).To(gomega.Equal(audit.EntitySite))
			gomega.Expect(sink.entries[0].Action).To(gomega.Equal(audit.ActionCreate))
		})

		ginkgo.It("should require a name", func() {
			_, err := service.Create(ctx, CreateSiteDTO{Name: "  "})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeValidation))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject a duplicate name", func() {
			first := create("Harbour Warehouse")

			_, err := service.Create(ctx, CreateSiteDTO{Name: "Harbour Warehouse"})

			appErr := appError(err)
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeDuplicateName))
			gomega.Expect(appErr.Details).To(gomega.Equal(internal.ConflictDetails{ConflictingID: first.ID}))
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should allow keeping the same name", func() {
			s := create("Harbour Warehouse")

			updated, err := service.Update(ctx, s.ID, UpdateSiteDTO{Name: "Harbour Warehouse", Location: "Tanjung Priok", Active: true})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(updated.Location).To(gomega.Equal("Tanjung Priok"))
			gomega.Expect(sink.entries).To(gomega.HaveLen(2))
			gomega.Expect(sink.entries[1].Action).To(gomega.Equal(audit.ActionUpdate))
		})
	})

	ginkgo.Describe("ToggleActive", func() {
		ginkgo.It("should return to the original state after two toggles", func() {
			s := create("Harbour Warehouse")

			_, err := service.ToggleActive(ctx, s.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.rows[s.ID].Active).To(gomega.BeFalse())

			again, err := service.ToggleActive(ctx, s.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(again.Active).To(gomega.BeTrue())
			gomega.Expect(repo.rows[s.ID].Active).To(gomega.BeTrue())
		})

		ginkgo.It("should return not found for an unknown id", func() {
			_, err := service.ToggleActive(ctx, "missing")

			appErr := appError(err)
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeSiteNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should refuse while timesheets reference the site", func() {
			s := create("Harbour Warehouse")
			repo.timesheets[s.ID] = []DatedHours{hoursOn(2024, 3, 1, 8)}

			err := service.Delete(ctx, s.ID)

			appErr := appError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeDependencyConflict))
			gomega.Expect(appErr.Details).To(gomega.Equal(internal.DependencyDetails{Dependents: 1}))
			gomega.Expect(repo.rows).To(gomega.HaveKey(s.ID))
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
		})

		ginkgo.It("should delete an unreferenced site with one delete entry", func() {
			s := create("Harbour Warehouse")
			sink.entries = nil

			gomega.Expect(service.Delete(ctx, s.ID)).To(gomega.Succeed())

			gomega.Expect(repo.rows).To(gomega.BeEmpty())
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries[0].Action).To(gomega.Equal(audit.ActionDelete))
		})

		ginkgo.It("should wrap store failures", func() {
			s := create("Harbour Warehouse")
			repo.SetShouldFail(errors.New("connection reset"))

			err := service.Delete(ctx, s.ID)

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeStore))
		})

		ginkgo.It("should not audit a delete when the row vanished after the lookup", func() {
			s := create("Harbour Warehouse")
			sink.entries = nil
			repo.vanished = true

			err := service.Delete(ctx, s.ID)

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeSiteNotFound))
			gomega.Expect(sink.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Stats", func() {
		ginkgo.It("should count active and inactive sites", func() {
			create("Harbour Warehouse")
			closed := create("Closed Yard")
			_, err := service.ToggleActive(ctx, closed.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			stats, err := service.Stats(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*stats).To(gomega.Equal(Stats{Total: 2, Active: 1, Inactive: 1}))
		})
	})

	ginkgo.Describe("MonthlyHours", func() {
		ginkgo.It("should sum hours per month oldest first", func() {
			s := create("Harbour Warehouse")
			repo.timesheets[s.ID] = []DatedHours{
				hoursOn(2024, 3, 2, 8),
				hoursOn(2024, 2, 28, 6),
				hoursOn(2024, 3, 1, 7),
			}

			months, err := service.MonthlyHours(ctx, s.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(months).To(gomega.HaveLen(2))
			gomega.Expect(months[0].Month).To(gomega.Equal("2024-02"))
			gomega.Expect(months[0].TotalHours.Equal(decimal.NewFromInt(6))).To(gomega.BeTrue())
			gomega.Expect(months[1].Month).To(gomega.Equal("2024-03"))
			gomega.Expect(months[1].TotalHours.Equal(decimal.NewFromInt(15))).To(gomega.BeTrue())
		})

		ginkgo.It("should return not found for an unknown site", func() {
			_, err := service.MonthlyHours(ctx, "missing")

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})

	ginkgo.Describe("Leaderboard", func() {
		ginkgo.It("should cap the board at ten sites", func() {
			for i := 0; i < 12; i++ {
				repo.leaderboard = append(repo.leaderboard, SiteHours{SiteName: fmt.Sprintf("Site %d", i), TotalHours: decimal.NewFromInt(int64(100 - i))})
			}

			board, err := service.Leaderboard(ctx)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(board).To(gomega.HaveLen(10))
			gomega.Expect(board[0].SiteName).To(gomega.Equal("Site 0"))
		})
	})
})
