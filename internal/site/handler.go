package site

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Get(ctx context.Context, id string) (*Site, error)
	List(ctx context.Context, filter ListFilter) ([]*Site, error)
	Create(ctx context.Context, dto CreateSiteDTO) (*Site, error)
	Update(ctx context.Context, id string, dto UpdateSiteDTO) (*Site, error)
	ToggleActive(ctx context.Context, id string) (*Site, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
	Leaderboard(ctx context.Context) ([]SiteHours, error)
	MonthlyHours(ctx context.Context, id string) ([]MonthHours, error)
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

func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	active, err := h.QueryBool(r, "active")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	sites, err := h.Service.List(r.Context(), ListFilter{Active: active, Search: r.URL.Query().Get("q")})
	if err != nil {
		h.Logger.Error("ListSites: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Sites: sites, Count: len(sites)})
}

func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var dto CreateSiteDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateSite: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var dto UpdateSiteDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	s, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), dto)
	if err != nil {
		h.Logger.Error("UpdateSite: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	s, err := h.Service.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.Logger.Error("DeleteSite: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.Leaderboard(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sites": rows})
}

func (h *Handler) GetMonthlyHours(w http.ResponseWriter, r *http.Request) {
	months, err := h.Service.MonthlyHours(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"months": months})
}
