package user

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/dates"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error
	SetOutOfOffice(ctx context.Context, id uuid.UUID, endDate *time.Time) error
	ClearOutOfOffice(ctx context.Context, id uuid.UUID) error
	GetOutOfOfficeUsers(ctx context.Context, day time.Time) ([]ProfileDTO, error)
	GetBirthdaysToday(ctx context.Context) ([]ProfileDTO, error)
	GetBirthdaysTomorrow(ctx context.Context) ([]ProfileDTO, error)
	GetRecentUsers(ctx context.Context, days int) ([]ProfileDTO, error)
	GetDirectory(ctx context.Context) ([]DirectoryUserDTO, error)
	ListAllUsers(ctx context.Context) ([]AdminUserListDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (*AdminUserDTO, error)
	CreateUser(ctx context.Context, dto AdminCreateUserDTO) (*AdminUserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, dto AdminUpdateUserDTO) error
	DeleteUser(ctx context.Context, actorID, id uuid.UUID) error
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

// GetMe handles GET /user/me
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	profile, err := h.Service.GetProfile(r.Context(), caller.ID)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, profile)
}

// UpdateMe handles PUT /user/me
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto UpdateProfileDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.UpdateProfile(r.Context(), caller.ID, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetOutOfOffice handles PUT /user/me/outofoffice. An empty body means today only.
func (h *Handler) SetOutOfOffice(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	var dto SetOutOfOfficeDTO
	if err := h.DecodeOptionalJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.SetOutOfOffice(r.Context(), caller.ID, dates.Ptr(dto.EndDate)); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearOutOfOffice handles DELETE /user/me/outofoffice
func (h *Handler) ClearOutOfOffice(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	if err := h.Service.ClearOutOfOffice(r.Context(), caller.ID); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDirectory handles GET /directory
func (h *Handler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetDirectory(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetBirthdaysToday(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetBirthdaysToday(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) GetBirthdaysTomorrow(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetBirthdaysTomorrow(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetNewUsers handles GET /user/new?days=N, defaulting to 30 days.
func (h *Handler) GetNewUsers(w http.ResponseWriter, r *http.Request) {
	days := DefaultRecentDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleServiceError(w, r, internal.NewValidationFieldError("days", "days must be an integer", internal.ErrCodeValidationFailed))
			return
		}
		days = n
	}
	users, err := h.Service.GetRecentUsers(r.Context(), days)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetOutOfOffice handles GET /user/outofoffice?date=YYYY-MM-DD, defaulting to today.
func (h *Handler) GetOutOfOffice(w http.ResponseWriter, r *http.Request) {
	day := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := dates.Parse(raw)
		if err != nil {
			h.HandleServiceError(w, r, internal.NewValidationFieldError("date", err.Error(), internal.ErrCodeInvalidDate))
			return
		}
		day = d.Time
	}
	users, err := h.Service.GetOutOfOfficeUsers(r.Context(), day)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// ListUsers handles GET /user/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListAllUsers(r.Context())
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /user/admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	u, err := h.Service.GetUser(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

// CreateUser handles POST /user/admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var dto AdminCreateUserDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	created, err := h.Service.CreateUser(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/user/admin/users/"+created.ID.String())
	h.WriteJSON(w, http.StatusCreated, created)
}

// UpdateUser handles PUT /user/admin/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	var dto AdminUpdateUserDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.UpdateUser(r.Context(), id, dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteUser handles DELETE /user/admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.CurrentUser(w, r)
	if !ok {
		return
	}
	id, err := h.ParseUUIDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	if err := h.Service.DeleteUser(r.Context(), caller.ID, id); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
