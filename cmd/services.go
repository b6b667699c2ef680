package cmd

import (
	"log/slog"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/assignment"
	assignmentRepo "github.com/frahmantamala/workforce-timekeeping/internal/assignment/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	auditRepo "github.com/frahmantamala/workforce-timekeeping/internal/audit/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/auth"
	authRepo "github.com/frahmantamala/workforce-timekeeping/internal/auth/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/clock"
	"github.com/frahmantamala/workforce-timekeeping/internal/core/events"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	employeeRepo "github.com/frahmantamala/workforce-timekeeping/internal/employee/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/report"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	siteRepo "github.com/frahmantamala/workforce-timekeeping/internal/site/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
	timesheetRepo "github.com/frahmantamala/workforce-timekeeping/internal/timesheet/postgres"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport/rest"
	"github.com/frahmantamala/workforce-timekeeping/internal/user"
	userRepo "github.com/frahmantamala/workforce-timekeeping/internal/user/postgres"
	"gorm.io/gorm"
)

// Services holds every domain service wired against one database and one event bus.
type Services struct {
	Clock      clock.Clock
	Users      *authRepo.Repository
	Auth       *auth.Service
	User       *user.Service
	Employee   *employee.Service
	Site       *site.Service
	Assignment *assignment.Service
	Timesheet  *timesheet.Service
	Report     *report.Service
	Audit      *audit.Service
}

func buildServices(cfg *internal.Config, db *gorm.DB, lg *slog.Logger) *Services {
	clk := clock.System()

	bus := events.NewEventBus(lg)
	auditSvc := audit.NewService(auditRepo.NewAuditRepository(db), cfg.Audit.AuditListLimit(), lg)
	auditSvc.Register(bus)
	recorder := audit.NewRecorder(bus, clk, lg)

	employeeSvc := employee.NewService(employeeRepo.NewEmployeeRepository(db), recorder, clk, lg)
	siteSvc := site.NewService(siteRepo.NewSiteRepository(db), recorder, clk, lg)
	assignmentSvc := assignment.NewService(assignmentRepo.NewAssignmentRepository(db), employeeSvc, siteSvc, recorder, clk, lg)
	timesheetSvc := timesheet.NewService(timesheetRepo.NewTimesheetRepository(db), employeeSvc, siteSvc, recorder, clk, lg)

	users := authRepo.NewRepository(db)
	tokens := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.AccessTokenDuration, clk)

	return &Services{
		Clock:      clk,
		Users:      users,
		Auth:       auth.NewService(users, tokens, cfg.Security.BCryptCost, lg),
		User:       user.NewService(userRepo.NewUserRepository(db), lg),
		Employee:   employeeSvc,
		Site:       siteSvc,
		Assignment: assignmentSvc,
		Timesheet:  timesheetSvc,
		Report:     report.NewService(timesheetSvc, clk, lg),
		Audit:      auditSvc,
	}
}

func (s *Services) Handlers(lg *slog.Logger) rest.Handlers {
	base := transport.NewBaseHandler(lg)
	return rest.Handlers{
		Auth:       auth.NewHandler(base, s.Auth),
		User:       user.NewHandler(base, s.User),
		Employee:   employee.NewHandler(base, s.Employee),
		Site:       site.NewHandler(base, s.Site),
		Assignment: assignment.NewHandler(base, s.Assignment),
		Timesheet:  timesheet.NewHandler(base, s.Timesheet),
		Report:     report.NewHandler(base, s.Report),
		Audit:      audit.NewHandler(base, s.Audit),
	}
}
