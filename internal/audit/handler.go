package audit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)
	Stats(ctx context.Context, filter ListFilter) (*Stats, error)
	ExportCSV(ctx context.Context, filter ListFilter, w io.Writer) error
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
		Entity: q.Get("entity"),
		Action: q.Get("action"),
		Actor:  q.Get("actor"),
	}
	from, err := h.QueryDate(r, "date_from")
	if err != nil {
		return filter, err
	}
	filter.DateFrom = from
	if raw := q.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	return filter, nil
}

// ListEntries handles GET /api/v1/audit
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListEntries: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListResponse{Entries: entries, Count: len(entries)})
}

// GetStats handles GET /api/v1/audit/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	stats, err := h.Service.Stats(r.Context(), filter)
	if err != nil {
		h.Logger.Error("GetStats: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

// Export handles GET /api/v1/audit/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Service.ExportCSV(r.Context(), filter, &buf); err != nil {
		h.Logger.Error("Export: failed to build csv", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "audit_log.csv"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.Logger.Error("Export: failed to write csv", "error", err)
	}
}
