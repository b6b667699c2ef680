package report

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Generate(ctx context.Context, kind string, q Query) (*Report, error)
	ExportXLSX(ctx context.Context, kind string, q Query) (*Report, []byte, error)
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

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationFieldError(name, fmt.Sprintf("%s must be a number", name), errors.ErrCodeValidationFailed)
	}
	return n, nil
}

func (h *Handler) parseQuery(r *http.Request) (Query, error) {
	q := Query{
		EmployeeID: r.URL.Query().Get("employee_id"),
		SiteID:     r.URL.Query().Get("site_id"),
	}
	var err error
	if q.Date, err = h.QueryDate(r, "date"); err != nil {
		return q, err
	}
	if q.From, err = h.QueryDate(r, "from"); err != nil {
		return q, err
	}
	if q.To, err = h.QueryDate(r, "to"); err != nil {
		return q, err
	}
	if q.Year, err = queryInt(r, "year"); err != nil {
		return q, err
	}
	if q.Month, err = queryInt(r, "month"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rep, err := h.Service.Generate(r.Context(), chi.URLParam(r, "period"), q)
	if err != nil {
		h.Logger.Error("GetReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rep)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rep, data, err := h.Service.ExportXLSX(r.Context(), chi.URLParam(r, "period"), q)
	if err != nil {
		h.Logger.Error("ExportReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Period.FileName("xlsx")))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write report workbook", "error", err)
	}
}
