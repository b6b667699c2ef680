package employee

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Get(ctx context.Context, id string) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]*Employee, error)
	Create(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error)
	Update(ctx context.Context, id string, dto UpdateEmployeeDTO) (*Employee, error)
	ToggleActive(ctx context.Context, id string) (*Employee, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
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

// ListEmployees handles GET /api/v1/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	active, err := h.QueryBool(r, "active")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	filter := ListFilter{
		Role:   r.URL.Query().Get("role"),
		Active: active,
		Search: r.URL.Query().Get("q"),
	}

	employees, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListEmployees: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Employees: employees, Count: len(employees)})
}

// GetEmployee handles GET /api/v1/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

// CreateEmployee handles POST /api/v1/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	e, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

// UpdateEmployee handles PUT /api/v1/employees/{id}
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto UpdateEmployeeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	e, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.Logger.Error("UpdateEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// ToggleActive handles POST /api/v1/employees/{id}/toggle-active
func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, e)
}

// DeleteEmployee handles DELETE /api/v1/employees/{id}
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("DeleteEmployee: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetStats handles GET /api/v1/employees/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}
