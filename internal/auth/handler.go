package auth

import (
	"errors"
	"net/http"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/frahmantamala/hrtool/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(w, r, &dto); err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	resp, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, r, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// AuthMiddleware requires a valid bearer token and places the caller in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateToken(token)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, internal.ErrTokenExpired) {
				msg = "token has expired"
			}
			logger.From(r.Context()).Debug("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, msg)
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := internal.ContextWithUser(r.Context(), &internal.User{
			ID:    userID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		ctx = logger.With(ctx, "user_id", userID.String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
