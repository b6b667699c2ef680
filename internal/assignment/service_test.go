package assignment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/calendar"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	assignmentDatamodel "github.com/frahmantamala/workforce-timekeeping/internal/core/datamodel/assignment"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

const (
	assignment1ID = "a5000000-0000-4000-8000-000000000001"
	employee1ID   = "e0000000-0000-4000-8000-000000000001"
	employee2ID   = "e0000000-0000-4000-8000-000000000002"
	site1ID       = "5e000000-0000-4000-8000-000000000001"
	site2ID       = "5e000000-0000-4000-8000-000000000002"
	site3ID       = "5e000000-0000-4000-8000-000000000003"
)

// Mock RepositoryAPI keeping rows in memory
type mockRepository struct {
	rows         []*assignmentDatamodel.Assignment
	timesheets   map[string]int64
	nextID       int
	vanished     bool
	shouldFail   bool
	failingError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{timesheets: map[string]int64{}}
}

func (m *mockRepository) SetShouldFail(err error) {
	m.shouldFail = true
	m.failingError = err
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*assignmentDatamodel.Assignment, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) ListByEmployeeAndSite(ctx context.Context, employeeID, siteID string) ([]*assignmentDatamodel.Assignment, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	var out []*assignmentDatamodel.Assignment
	for _, r := range m.rows {
		if r.EmployeeID == employeeID && r.SiteID == siteID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]*assignmentDatamodel.Assignment, error) {
	if m.shouldFail {
		return nil, m.failingError
	}
	var out []*assignmentDatamodel.Assignment
	for _, r := range m.rows {
		if filter.EmployeeID != "" && r.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.SiteID != "" && r.SiteID != filter.SiteID {
			continue
		}
		if (filter.Status == StatusActive && r.EndDate != nil) || (filter.Status == StatusClosed && r.EndDate == nil) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepository) CreateChecked(ctx context.Context, a *assignmentDatamodel.Assignment, check func([]*assignmentDatamodel.Assignment) error) error {
	existing, err := m.ListByEmployeeAndSite(ctx, a.EmployeeID, a.SiteID)
	if err != nil {
		return err
	}
	if err := check(existing); err != nil {
		return err
	}
	m.nextID++
	a.ID = fmt.Sprintf("a5000000-0000-4000-8000-%012d", m.nextID)
	m.rows = append(m.rows, a)
	return nil
}

func (m *mockRepository) CloseOpen(ctx context.Context, id string, endDate time.Time) (bool, error) {
	if m.shouldFail {
		return false, m.failingError
	}
	for _, r := range m.rows {
		if r.ID == id && r.EndDate == nil {
			r.EndDate = &endDate
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) DeleteUnreferenced(ctx context.Context, id string) (bool, int64, error) {
	if m.shouldFail {
		return false, 0, m.failingError
	}
	if m.vanished {
		return false, 0, nil
	}
	for i, r := range m.rows {
		if r.ID != id {
			continue
		}
		if n := m.timesheets[r.EmployeeID+"/"+r.SiteID]; n > 0 {
			return true, n, nil
		}
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		return true, 0, nil
	}
	return false, 0, nil
}

type mockEmployees map[string]*employee.Employee

func (m mockEmployees) Get(ctx context.Context, id string) (*employee.Employee, error) {
	if e, ok := m[id]; ok {
		return e, nil
	}
	return nil, internal.NewNotFoundError("employee not found", internal.ErrCodeEmployeeNotFound)
}

type mockSites map[string]*site.Site

func (m mockSites) Get(ctx context.Context, id string) (*site.Site, error) {
	if s, ok := m[id]; ok {
		return s, nil
	}
	return nil, internal.NewNotFoundError("site not found", internal.ErrCodeSiteNotFound)
}

type recordedEntry struct {
	Actor    string
	Action   audit.Action
	Entity   audit.EntityType
	EntityID string
	Details  interface{}
}

type fakeSink struct {
	entries []recordedEntry
}

func (f *fakeSink) Record(ctx context.Context, action audit.Action, entity audit.EntityType, entityID string, details interface{}) {
	f.entries = append(f.entries, recordedEntry{
		Actor:    internal.ActorFromContext(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Details:  details,
	})
}

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func date(y int, m time.Month, d int) calendar.Date {
	return calendar.NewDate(day(y, m, d))
}

func datePtr(y int, m time.Month, d int) *calendar.Date {
	dt := date(y, m, d)
	return &dt
}

func appError(err error) *internal.AppError {
	appErr, ok := internal.IsAppError(err)
	gomega.Expect(ok).To(gomega.BeTrue(), "expected an AppError, got %v", err)
	return appErr
}

var _ = ginkgo.Describe("AssignmentService", func() {
	var (
		service *Service
		repo    *mockRepository
		sink    *fakeSink
		clk     *clock.Fixed
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		repo = newMockRepository()
		sink = &fakeSink{}
		clk = clock.NewFixed(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))
		ctx = internal.ContextWithActor(context.Background(), "office@example.com")

		employees := mockEmployees{
			employee1ID: {ID: employee1ID, FullName: "Budi Santoso", Active: true},
			employee2ID: {ID: employee2ID, FullName: "Retired Worker", Active: false},
		}
		sites := mockSites{
			site1ID: {ID: site1ID, Name: "Harbour Warehouse", Active: true},
			site2ID: {ID: site2ID, Name: "Riverside Tower", Active: true},
			site3ID: {ID: site3ID, Name: "Closed Yard", Active: false},
		}
		service = NewService(repo, employees, sites, sink, clk, testLogger)
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should store the assignment with name snapshots and audit it", func() {
			// When
			a, err := service.Create(ctx, CreateAssignmentDTO{
				EmployeeID: employee1ID,
				SiteID:     site1ID,
				StartDate:  date(2024, 1, 1),
				EndDate:    datePtr(2024, 1, 31),
			})

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(a.ID).To(gomega.Equal(assignment1ID))
			gomega.Expect(a.EmployeeName).To(gomega.Equal("Budi Santoso"))
			gomega.Expect(a.SiteName).To(gomega.Equal("Harbour Warehouse"))
			gomega.Expect(a.CreatedBy).To(gomega.Equal("office@example.com"))
			gomega.Expect(a.Status()).To(gomega.Equal(StatusClosed))

			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries[0].Action).To(gomega.Equal(audit.ActionCreate))
			gomega.Expect(sink.entries[0].Entity).To(gomega.Equal(audit.EntityAssignment))
			gomega.Expect(sink.entries[0].EntityID).To(gomega.Equal(assignment1ID))
			gomega.Expect(sink.entries[0].Actor).To(gomega.Equal("office@example.com"))
		})

		ginkgo.It("should reject an interval inside an existing one and name the conflict", func() {
			// Given
			first, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 31)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			// When
			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 1, 10), EndDate: datePtr(2024, 1, 15)})

			// Then
			appErr := appError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeConflict))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeAssignmentOverlap))
			gomega.Expect(appErr.Message).To(gomega.Equal("an assignment overlapping this interval already exists for this employee at this site"))
			gomega.Expect(appErr.Details).To(gomega.Equal(internal.ConflictDetails{ConflictingID: first.ID}))
			gomega.Expect(repo.rows).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
		})

		ginkgo.It("should accept the same interval at a different site", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 31)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site2ID, StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 31)})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.rows).To(gomega.HaveLen(2))
		})

		ginkgo.It("should reject a second open-ended assignment for the pair", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 3, 1)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 6, 1)})

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeAssignmentOverlap))
		})

		ginkgo.It("should reject an end date before the start date", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 2, 1), EndDate: datePtr(2024, 1, 1)})

			appErr := appError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject missing references", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{StartDate: date(2024, 2, 1)})

			details := appError(err).Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors).To(gomega.HaveLen(2))
		})

		ginkgo.It("should reject an inactive employee", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee2ID, SiteID: site1ID, StartDate: date(2024, 2, 1)})

			details := appError(err).Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("employee_id"))
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInactiveEntity)))
		})

		ginkgo.It("should reject an inactive site", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site3ID, StartDate: date(2024, 2, 1)})

			details := appError(err).Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("site_id"))
		})

		ginkgo.It("should surface an unknown employee as not found", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: "e0000000-0000-4000-8000-000000000099", SiteID: site1ID, StartDate: date(2024, 2, 1)})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})

		ginkgo.It("should reject a malformed employee id before reaching the store", func() {
			repo.SetShouldFail(errors.New("invalid input syntax for type uuid"))

			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: "abc", SiteID: site1ID, StartDate: date(2024, 2, 1)})

			appErr := appError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			details := appErr.Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("employee_id"))
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInvalidID)))
		})

		ginkgo.It("should wrap repository failures as store errors", func() {
			repo.SetShouldFail(errors.New("connection reset"))

			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 2, 1)})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeStore))
			gomega.Expect(sink.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("HasOverlap", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 10)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should report no overlap for an adjacent interval", func() {
			end := day(2024, 1, 20)
			overlap, id, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site1ID, StartDate: day(2024, 1, 11), EndDate: &end})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(overlap).To(gomega.BeFalse())
			gomega.Expect(id).To(gomega.BeEmpty())
		})

		ginkgo.It("should report the conflicting assignment id", func() {
			overlap, id, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site1ID, StartDate: day(2024, 1, 5)})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(overlap).To(gomega.BeTrue())
			gomega.Expect(id).To(gomega.Equal(assignment1ID))
		})

		ginkgo.It("should honour the excluded id", func() {
			overlap, _, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site1ID, StartDate: day(2024, 1, 5), ExcludeID: assignment1ID})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(overlap).To(gomega.BeFalse())
		})

		ginkgo.It("should reject malformed ids as validation errors", func() {
			_, _, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site1ID, StartDate: day(2024, 1, 5), ExcludeID: "42"})

			details := appError(err).Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors[0].Field).To(gomega.Equal("exclude_id"))

			_, err = service.List(ctx, ListFilter{SiteID: "site-one"})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})

		ginkgo.It("should let a future dated interval pass an open-ended assignment", func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site2ID, StartDate: date(2024, 3, 1)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			end := day(2024, 8, 1)
			future, _, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site2ID, StartDate: day(2024, 7, 1), EndDate: &end})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(future).To(gomega.BeFalse())

			// When the clock catches up the same interval conflicts
			clk.Set(day(2024, 7, 2))
			future, _, err = service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site2ID, StartDate: day(2024, 7, 1), EndDate: &end})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(future).To(gomega.BeTrue())
		})

		ginkgo.It("should fail on store errors", func() {
			repo.SetShouldFail(errors.New("timeout"))

			_, _, err := service.HasOverlap(ctx, OverlapQuery{EmployeeID: employee1ID, SiteID: site1ID, StartDate: day(2024, 1, 5)})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeStore))
		})
	})

	ginkgo.Describe("Close", func() {
		var open *Assignment

		ginkgo.BeforeEach(func() {
			var err error
			open, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 3, 1)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			sink.entries = nil
		})

		ginkgo.It("should set the end date and audit the change", func() {
			a, err := service.Close(ctx, open.ID, CloseAssignmentDTO{EndDate: date(2024, 4, 30)})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(a.Status()).To(gomega.Equal(StatusClosed))
			gomega.Expect(*a.EndDate).To(gomega.Equal(day(2024, 4, 30)))
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries[0].Action).To(gomega.Equal(audit.ActionUpdate))
			gomega.Expect(sink.entries[0].Details).To(gomega.Equal(audit.FieldChange("end_date", nil, "2024-04-30")))
		})

		ginkgo.It("should allow a later assignment once closed", func() {
			_, err := service.Close(ctx, open.ID, CloseAssignmentDTO{EndDate: date(2024, 4, 30)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 5, 1)})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an end date before the start date without mutating", func() {
			_, err := service.Close(ctx, open.ID, CloseAssignmentDTO{EndDate: date(2024, 2, 1)})

			details := appError(err).Details.(internal.ValidationErrors)
			gomega.Expect(details.Errors[0].Code).To(gomega.Equal(string(internal.ErrCodeInvalidDateRange)))
			gomega.Expect(repo.rows[0].EndDate).To(gomega.BeNil())
			gomega.Expect(sink.entries).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse to close twice", func() {
			_, err := service.Close(ctx, open.ID, CloseAssignmentDTO{EndDate: date(2024, 4, 30)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Close(ctx, open.ID, CloseAssignmentDTO{EndDate: date(2024, 5, 30)})

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeAlreadyClosed))
			gomega.Expect(*repo.rows[0].EndDate).To(gomega.Equal(day(2024, 4, 30)))
		})

		ginkgo.It("should return not found for an unknown id", func() {
			_, err := service.Close(ctx, "a5000000-0000-4000-8000-000000000099", CloseAssignmentDTO{EndDate: date(2024, 4, 30)})

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeAssignmentNotFound))
		})

		ginkgo.It("should treat a malformed id as not found without querying the store", func() {
			repo.SetShouldFail(errors.New("invalid input syntax for type uuid"))

			_, err := service.Close(ctx, "not-a-uuid", CloseAssignmentDTO{EndDate: date(2024, 4, 30)})

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeAssignmentNotFound))
		})
	})

	ginkgo.Describe("Delete", func() {
		var a *Assignment

		ginkgo.BeforeEach(func() {
			var err error
			a, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 3, 1)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			sink.entries = nil
		})

		ginkgo.It("should delete an unreferenced assignment and audit it once", func() {
			err := service.Delete(ctx, a.ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.rows).To(gomega.BeEmpty())
			gomega.Expect(sink.entries).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries[0].Action).To(gomega.Equal(audit.ActionDelete))
		})

		ginkgo.It("should block the delete while timesheets reference the pair", func() {
			repo.timesheets[employee1ID+"/"+site1ID] = 3

			err := service.Delete(ctx, a.ID)

			appErr := appError(err)
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeDependencyConflict))
			gomega.Expect(appErr.Details).To(gomega.Equal(internal.DependencyDetails{Dependents: 3}))
			gomega.Expect(repo.rows).To(gomega.HaveLen(1))
			gomega.Expect(sink.entries).To(gomega.BeEmpty())
		})

		ginkgo.It("should not audit a delete when the row vanished after the lookup", func() {
			repo.vanished = true

			err := service.Delete(ctx, a.ID)

			gomega.Expect(appError(err).Code).To(gomega.Equal(internal.ErrCodeAssignmentNotFound))
			gomega.Expect(sink.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("Summaries", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site2ID, StartDate: date(2024, 1, 1), EndDate: datePtr(2024, 1, 31)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site1ID, StartDate: date(2024, 2, 1)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Create(ctx, CreateAssignmentDTO{EmployeeID: employee1ID, SiteID: site2ID, StartDate: date(2024, 3, 1), EndDate: datePtr(2024, 3, 31)})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("should count active and completed assignments per employee", func() {
			summary, err := service.EmployeeSummary(ctx, employee1ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(summary.Active).To(gomega.Equal(1))
			gomega.Expect(summary.Completed).To(gomega.Equal(2))
			gomega.Expect(summary.Sites).To(gomega.Equal([]string{"Harbour Warehouse", "Riverside Tower"}))
		})

		ginkgo.It("should list distinct employees per site", func() {
			summary, err := service.SiteSummary(ctx, site2ID)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(summary.Active).To(gomega.Equal(0))
			gomega.Expect(summary.Completed).To(gomega.Equal(2))
			gomega.Expect(summary.Employees).To(gomega.Equal([]string{"Budi Santoso"}))
		})

		ginkgo.It("should reject an unknown status filter", func() {
			_, err := service.List(ctx, ListFilter{Status: "paused"})

			gomega.Expect(appError(err).Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})
})
