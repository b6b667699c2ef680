package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/workforce-timekeeping/internal/assignment"
	"github.com/frahmantamala/workforce-timekeeping/internal/audit"
	"github.com/frahmantamala/workforce-timekeeping/internal/auth"
	"github.com/frahmantamala/workforce-timekeeping/internal/employee"
	"github.com/frahmantamala/workforce-timekeeping/internal/report"
	"github.com/frahmantamala/workforce-timekeeping/internal/site"
	"github.com/frahmantamala/workforce-timekeeping/internal/timesheet"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport/middleware"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport/swagger"
	"github.com/frahmantamala/workforce-timekeeping/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth       *auth.Handler
	User       *user.Handler
	Employee   *employee.Handler
	Site       *site.Handler
	Assignment *assignment.Handler
	Timesheet  *timesheet.Handler
	Report     *report.Handler
	Audit      *audit.Handler
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	MetricsEnabled bool
	MetricsPath    string
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, opts Options, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.TraceIDHeader},
		ExposedHeaders:   []string{middleware.TraceIDHeader, "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware)
	if opts.MetricsEnabled {
		router.Use(middleware.Metrics)
		router.Handle(opts.MetricsPath, promhttp.Handler())
	}

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", serveOpenAPI)
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		if opts.RequestTimeout > 0 {
			r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
		}

		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/", h.Employee.ListEmployees)
				er.Post("/", h.Employee.CreateEmployee)
				er.Get("/stats", h.Employee.GetStats)
				er.Get("/{id}", h.Employee.GetEmployee)
				er.Put("/{id}", h.Employee.UpdateEmployee)
				er.Delete("/{id}", h.Employee.DeleteEmployee)
				er.Post("/{id}/toggle-active", h.Employee.ToggleActive)
				er.Get("/{id}/assignments/summary", h.Assignment.GetEmployeeSummary)
			})

			pr.Route("/sites", func(sr chi.Router) {
				sr.Get("/", h.Site.ListSites)
				sr.Post("/", h.Site.CreateSite)
				sr.Get("/stats", h.Site.GetStats)
				sr.Get("/leaderboard", h.Site.GetLeaderboard)
				sr.Get("/{id}", h.Site.GetSite)
				sr.Put("/{id}", h.Site.UpdateSite)
				sr.Delete("/{id}", h.Site.DeleteSite)
				sr.Post("/{id}/toggle-active", h.Site.ToggleActive)
				sr.Get("/{id}/monthly-hours", h.Site.GetMonthlyHours)
				sr.Get("/{id}/assignments/summary", h.Assignment.GetSiteSummary)
			})

			pr.Route("/assignments", func(ar chi.Router) {
				ar.Get("/", h.Assignment.ListAssignments)
				ar.Post("/", h.Assignment.CreateAssignment)
				ar.Get("/overlap", h.Assignment.CheckOverlap)
				ar.Get("/{id}", h.Assignment.GetAssignment)
				ar.Delete("/{id}", h.Assignment.DeleteAssignment)
				ar.Post("/{id}/close", h.Assignment.CloseAssignment)
			})

			pr.Route("/timesheets", func(tr chi.Router) {
				tr.Get("/", h.Timesheet.ListTimesheets)
				tr.Post("/", h.Timesheet.CreateTimesheet)
				tr.Get("/stats", h.Timesheet.GetStats)
				tr.Get("/weekly", h.Timesheet.GetWeeklyGrid)
				tr.Get("/exists", h.Timesheet.CheckExists)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/{period}", h.Report.GetReport)
				rr.Get("/{period}/export", h.Report.ExportReport)
			})

			pr.Route("/audit", func(ar chi.Router) {
				ar.Get("/", h.Audit.ListEntries)
				ar.Get("/stats", h.Audit.GetStats)
				ar.Get("/export", h.Audit.Export)
			})
		})
	})
}
