package timesheet

import (
	"context"
	"net/http"
	"time"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
)

type ServiceAPI interface {
	Create(ctx context.Context, dto CreateTimesheetDTO) (*Timesheet, error)
	List(ctx context.Context, filter ListFilter) ([]*Timesheet, error)
	Exists(ctx context.Context, employeeID string, date time.Time) (bool, string, error)
	Stats(ctx context.Context, filter ListFilter) (*Stats, error)
	WeeklyGrid(ctx context.Context, weekOf time.Time) (*WeeklyGrid, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) parseFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{
		EmployeeID: q.Get("employee_id"),
		SiteID:     q.Get("site_id"),
		Status:     q.Get("status"),
	}
	var err error
	if filter.DateFrom, err = h.QueryDate(r, "date_from"); err != nil {
		return filter, err
	}
	if filter.DateTo, err = h.QueryDate(r, "date_to"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	timesheets, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListTimesheets: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	out := make([]TimesheetResponse, 0, len(timesheets))
	for _, t := range timesheets {
		out = append(out, t.ToResponse())
	}
	h.WriteJSON(w, http.StatusOK, ListResponse{Timesheets: out, Count: len(out)})
}

func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var dto CreateTimesheetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	t, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateTimesheet: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t.ToResponse())
}

func (h *Handler) CheckExists(w http.ResponseWriter, r *http.Request) {
	date, err := h.QueryDate(r, "date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if date == nil {
		h.HandleServiceError(w, errors.NewValidationFieldError("date", "date is required", errors.ErrCodeValidationFailed))
		return
	}

	exists, id, err := h.Service.Exists(r.Context(), r.URL.Query().Get("employee_id"), *date)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ExistsResponse{Exists: exists, TimesheetID: id})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	stats, err := h.Service.Stats(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetWeeklyGrid(w http.ResponseWriter, r *http.Request) {
	weekOf, err := h.QueryDate(r, "week_of")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	var ref time.Time
	if weekOf != nil {
		ref = *weekOf
	}

	grid, err := h.Service.WeeklyGrid(r.Context(), ref)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, grid)
}
