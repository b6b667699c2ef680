package assignment

import (
	"context"
	"net/http"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Get(ctx context.Context, id string) (*Assignment, error)
	List(ctx context.Context, filter ListFilter) ([]*Assignment, error)
	Create(ctx context.Context, dto CreateAssignmentDTO) (*Assignment, error)
	Close(ctx context.Context, id string, dto CloseAssignmentDTO) (*Assignment, error)
	Delete(ctx context.Context, id string) error
	HasOverlap(ctx context.Context, q OverlapQuery) (bool, string, error)
	EmployeeSummary(ctx context.Context, employeeID string) (*EmployeeSummary, error)
	SiteSummary(ctx context.Context, siteID string) (*SiteSummary, error)
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

func toResponses(assignments []*Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, a.ToResponse())
	}
	return out
}

func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		EmployeeID: q.Get("employee_id"),
		SiteID:     q.Get("site_id"),
		Status:     q.Get("status"),
	}

	assignments, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListAssignments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Assignments: toResponses(assignments), Count: len(assignments)})
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a.ToResponse())
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssignmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateAssignment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a.ToResponse())
}

func (h *Handler) CloseAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CloseAssignmentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.Close(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.Logger.Error("CloseAssignment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a.ToResponse())
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("DeleteAssignment: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckOverlap lets the form test an interval before submitting it.
func (h *Handler) CheckOverlap(w http.ResponseWriter, r *http.Request) {
	start, err := h.QueryDate(r, "start_date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if start == nil {
		h.HandleServiceError(w, errors.NewValidationFieldError("start_date", "start_date is required", errors.ErrCodeValidationFailed))
		return
	}
	end, err := h.QueryDate(r, "end_date")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	if end != nil && end.Before(*start) {
		h.HandleServiceError(w, errors.NewValidationFieldError("end_date", "end_date must be on or after start_date", errors.ErrCodeInvalidDateRange))
		return
	}

	q := r.URL.Query()
	overlap, conflictingID, err := h.Service.HasOverlap(r.Context(), OverlapQuery{
		EmployeeID: q.Get("employee_id"),
		SiteID:     q.Get("site_id"),
		StartDate:  *start,
		EndDate:    end,
		ExcludeID:  q.Get("exclude_id"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, OverlapResult{Overlap: overlap, ConflictingID: conflictingID})
}

func (h *Handler) GetEmployeeSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.EmployeeSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetSiteSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.SiteSummary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, summary)
}
