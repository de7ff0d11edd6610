package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/hrtool/pkg/logger"
)

type panicResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Panic   string `json:"panic,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// RecoveryMiddleware turns a panic into a 500. The panic value and stack are
// only written to the client when exposeDetails is set (development).
func RecoveryMiddleware(lg *slog.Logger, exposeDetails bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := string(debug.Stack())
				reqLogger := lg
				if ctxLogger, ok := logger.FromContext(r.Context()); ok {
					reqLogger = ctxLogger
				}
				reqLogger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"url", r.URL.String(),
					"stack", stack)

				resp := panicResponse{
					Code:    http.StatusInternalServerError,
					Message: "An unexpected error occurred.",
				}
				if exposeDetails {
					resp.Panic = fmt.Sprint(rec)
					resp.Stack = stack
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(resp)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
