package notification

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*NotificationDTO, error)
	GetAll(ctx context.Context, onlyActive bool) ([]NotificationDTO, error)
	Create(ctx context.Context, dto CreateNotificationDTO) (*NotificationDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto UpdateNotificationDTO) error
	Delete(ctx context.Context, id uuid.UUID) error
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

// GetActive handles GET /notifications
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetAll(r.Context(), true)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

// GetAll handles GET /notifications/admin, including inactive and expired entries.
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.GetAll(r.Context(), false)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	item, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateNotificationDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/notifications/admin/"+created.ID.String())
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto UpdateNotificationDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.Update(r.Context(), id, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
