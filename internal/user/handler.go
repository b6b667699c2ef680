package user

import (
	"context"
	"net/http"

	"github.com/frahmantamala/workforce-timekeeping/internal"
	"github.com/frahmantamala/workforce-timekeeping/internal/auth"
	"github.com/frahmantamala/workforce-timekeeping/internal/transport"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id string) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

// GetCurrentUser handles GET /api/v1/users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims == nil {
		h.HandleServiceError(w, internal.NewUnauthorizedError("unauthorized", internal.ErrCodeInvalidToken))
		return
	}

	u, err := h.Service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service error", "user_id", claims.UserID, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
