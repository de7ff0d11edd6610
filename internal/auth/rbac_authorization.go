package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/transport"
)

type RBACAuthorization struct {
	*transport.BaseHandler
	logger *slog.Logger
}

func NewRBACAuthorization(base *transport.BaseHandler, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		BaseHandler: base,
		logger:      logger,
	}
}

// RequireRole lets the request through only when the token's role claim equals role.
func (ra *RBACAuthorization) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := internal.UserFromContext(r.Context())
			if !ok {
				ra.logger.WarnContext(r.Context(), "authorization check failed: user not found in context")
				ra.WriteError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			if !user.HasRole(role) {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient role",
					"user_id", user.ID,
					"required_role", role,
					"user_role", user.Role)
				ra.HandleServiceError(w, r, internal.ErrInsufficientRole)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (ra *RBACAuthorization) RequireAdmin() func(http.Handler) http.Handler {
	return ra.RequireRole(internal.RoleAdmin)
}
