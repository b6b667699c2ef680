package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	auditDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/events"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Mock RepositoryAPI keeping entries in insertion order
type mockRepository struct {
	entries      []*auditDatamodel.Entry
	lastFilter   ListFilter
	shouldFail   bool
	failingError error
}

func (m *mockRepository) SetShouldFail(err error) {
	m.shouldFail = true
	m.failingError = err
}

func (m *mockRepository) Create(ctx context.Context, entry *auditDatamodel.Entry) error {
	if m.shouldFail {
		return m.failingError
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*auditDatamodel.Entry, error) {
	m.lastFilter = filter
	if m.shouldFail {
		return nil, m.failingError
	}
	var out []*auditDatamodel.Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if filter.Entity != "" && e.Entity != filter.Entity {
			continue
		}
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Actor != "" && !strings.Contains(strings.ToLower(e.Actor), strings.ToLower(filter.Actor)) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockRepository) ActorActivity(ctx context.Context, limit int) ([]ActorActivity, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	counts := map[string]int64{}
	for _, e := range m.entries {
		counts[e.Actor]++
	}
	var out []ActorActivity
	for actor, n := range counts {
		out = append(out, ActorActivity{Actor: actor, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Actor < out[j].Actor })
	return out, nil
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = ginkgo.Describe("Audit", func() {
	var (
		repo     *mockRepository
		service  *Service
		recorder *Recorder
		clk      *clock.Fixed
		ctx      context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = &mockRepository{}
		service = NewService(repo, 3, testLogger)
		clk = clock.NewFixed(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC))

		bus := events.NewEventBus(testLogger)
		service.Register(bus)
		recorder = NewRecorder(bus, clk, testLogger)
		ctx = internal.ContextWithActor(context.Background(), "office@example.com")
	})

	ginkgo.Describe("Recorder", func() {
		ginkgo.It("should persist one entry per recorded mutation", func() {
			// When
			recorder.Record(ctx, ActionUpdate, EntityEmployee, "emp-1", FieldChange("active", true, false))

			// Then
			gomega.Expect(repo.entries).To(gomega.HaveLen(1))
			entry := repo.entries[0]
			gomega.Expect(entry.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(entry.Timestamp).To(gomega.Equal(clk.Now()))
			gomega.Expect(entry.Actor).To(gomega.Equal("office@example.com"))
			gomega.Expect(entry.Action).To(gomega.Equal("update"))
			gomega.Expect(entry.Entity).To(gomega.Equal("Employee"))
			gomega.Expect(entry.EntityID).To(gomega.Equal("emp-1"))
			gomega.Expect(entry.Details).To(gomega.MatchJSON(`{"active":{"old":true,"new":false}}`))
		})

		ginkgo.It("should fall back to the default actor without one in context", func() {
			recorder.Record(context.Background(), ActionCreate, EntitySite, "site-1", nil)

			gomega.Expect(repo.entries).To(gomega.HaveLen(1))
			gomega.Expect(repo.entries[0].Actor).To(gomega.Equal(internal.ActorFromContext(context.Background())))
		})

		ginkgo.It("should swallow a failed write", func() {
			repo.SetShouldFail(errors.New("disk full"))

			gomega.Expect(func() {
				recorder.Record(ctx, ActionDelete, EntityTimesheet, "ts-1", nil)
			}).ToNot(gomega.Panic())
			gomega.Expect(repo.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("HandleMutation", func() {
		ginkgo.It("should reject foreign event payloads", func() {
			err := service.HandleMutation(ctx, events.BaseEvent{ID: "x", Type: events.EventTypeEntityMutated})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.BeforeEach(func() {
			recorder.Record(ctx, ActionCreate, EntityEmployee, "emp-1", nil)
			recorder.Record(internal.ContextWithActor(ctx, "foreman@example.com"), ActionCreate, EntitySite, "site-1", nil)
			recorder.Record(ctx, ActionDelete, EntityEmployee, "emp-1", nil)
			recorder.Record(ctx, ActionUpdate, EntityEmployee, "emp-2", nil)
		})

		ginkgo.It("should cap at the configured limit", func() {
			entries, err := service.List(ctx, ListFilter{Limit: 50})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastFilter.Limit).To(gomega.Equal(3))
			gomega.Expect(entries).To(gomega.HaveLen(3))
			gomega.Expect(entries[0].EntityID).To(gomega.Equal("emp-2"))
		})

		ginkgo.It("should filter by entity, action and actor", func() {
			entries, err := service.List(ctx, ListFilter{Entity: "Employee", Action: "delete"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(entries).To(gomega.HaveLen(1))

			entries, err = service.List(ctx, ListFilter{Actor: "FOREMAN"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(entries).To(gomega.HaveLen(1))
			gomega.Expect(entries[0].Entity).To(gomega.Equal("Site"))
		})

		ginkgo.It("should reject an unknown entity or action", func() {
			_, err := service.List(ctx, ListFilter{Entity: "Vehicle"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))

			_, err = service.List(ctx, ListFilter{Action: "archive"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should wrap store failures", func() {
			repo.SetShouldFail(errors.New("timeout"))

			_, err := service.List(ctx, ListFilter{})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeStore))
		})
	})

	ginkgo.Describe("Stats", func() {
		ginkgo.It("should count actions and distinct actors with zero-filled buckets", func() {
			recorder.Record(ctx, ActionCreate, EntityEmployee, "emp-1", nil)
			recorder.Record(internal.ContextWithActor(ctx, "foreman@example.com"), ActionCreate, EntitySite, "site-1", nil)

			stats, err := service.Stats(ctx, ListFilter{})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stats.Total).To(gomega.Equal(2))
			gomega.Expect(stats.ByAction).To(gomega.Equal(map[string]int{"create": 2, "update": 0, "delete": 0}))
			gomega.Expect(stats.DistinctActors).To(gomega.Equal(2))
			gomega.Expect(stats.TopActors).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("ExportCSV", func() {
		ginkgo.It("should write a header and one row per entry", func() {
			recorder.Record(ctx, ActionCreate, EntitySite, "site-1", map[string]string{"name": "Harbour, North"})

			var buf bytes.Buffer
			gomega.Expect(service.ExportCSV(ctx, ListFilter{}, &buf)).To(gomega.Succeed())

			records, err := csv.NewReader(&buf).ReadAll()
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(records).To(gomega.HaveLen(2))
			gomega.Expect(records[0]).To(gomega.Equal([]string{"Timestamp", "Actor", "Action", "Entity", "EntityID", "Details"}))
			gomega.Expect(records[1][0]).To(gomega.Equal("2024-03-01T09:30:00Z"))
			gomega.Expect(records[1][4]).To(gomega.Equal("site-1"))
			gomega.Expect(records[1][5]).To(gomega.MatchJSON(`{"name":"Harbour, North"}`))
		})
	})

	ginkgo.Describe("Handler", func() {
		var handler *Handler

		ginkgo.BeforeEach(func() {
			handler = NewHandler(&transport.BaseHandler{Logger: testLogger}, service)
			recorder.Record(ctx, ActionCreate, EntityEmployee, "emp-1", nil)
		})

		ginkgo.It("should list entries as JSON", func() {
			req := httptest.NewRequest(http.MethodGet, "/audit?entity=Employee", nil)
			rec := httptest.NewRecorder()

			handler.ListEntries(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var resp ListResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.Count).To(gomega.Equal(1))
			gomega.Expect(resp.Entries[0].Actor).To(gomega.Equal("office@example.com"))
		})

		ginkgo.It("should return 400 for a malformed date_from", func() {
			req := httptest.NewRequest(http.MethodGet, "/audit?date_from=yesterday", nil)
			rec := httptest.NewRecorder()

			handler.ListEntries(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should download the CSV export", func() {
			req := httptest.NewRequest(http.MethodGet, "/audit/export", nil)
			rec := httptest.NewRecorder()

			handler.Export(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Header().Get("Content-Type")).To(gomega.HavePrefix("text/csv"))
			gomega.Expect(rec.Header().Get("Content-Disposition")).To(gomega.ContainSubstring("audit_log.csv"))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("emp-1"))
		})
	})
})
