package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error)
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

// GetDashboard handles GET /dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	dash, err := h.Service.GetDashboard(r.Context(), caller.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, dash)
}
