package companylink

import (
	"context"
	"net/http"

	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CompanyLinkDTO, error)
	GetAll(ctx context.Context) ([]CompanyLinkDTO, error)
	Create(ctx context.Context, dto LinkInputDTO) (*CompanyLinkDTO, error)
	Update(ctx context.Context, id uuid.UUID, dto LinkInputDTO) error
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

// GetAll handles GET /companylinks
func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	links, err := h.Service.GetAll(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, links)
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	link, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, link)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto LinkInputDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	created, err := h.Service.Create(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/companylinks/admin/"+created.ID.String())
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto LinkInputDTO
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
