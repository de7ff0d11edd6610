package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

const maxBodyBytes = 1 << 20

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	if status >= http.StatusInternalServerError {
		h.Logger.Error("http error", "status", status, "message", message)
	} else {
		h.Logger.Debug("http error", "status", status, "message", message)
	}

	h.WriteJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}

// HandleServiceError maps an AppError to its status. Anything else becomes a
// generic 500 so internal details never reach the client.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	lg := logger.From(r.Context())
	if appErr, ok := internal.IsAppError(err); ok && appErr.StatusCode != 0 && appErr.Type != internal.ErrorTypeInternal {
		lg.Debug("request rejected", "status", appErr.StatusCode, "code", appErr.Code, "error", appErr.GetDetailedMessage())
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	lg.Error("unhandled service error", "error", err, "path", r.URL.Path)
	h.WriteJSON(w, http.StatusInternalServerError, internal.Response{
		Error: internal.NewInternalError("An unexpected error occurred.", nil),
	})
}

// DecodeJSON reads a bounded JSON body into dst.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return h.decodeJSON(w, r, dst, false)
}

// DecodeOptionalJSON is DecodeJSON for endpoints where an empty body leaves dst untouched.
// Chunked bodies carry no length, so emptiness is detected by reading.
func (h *BaseHandler) DecodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	return h.decodeJSON(w, r, dst, true)
}

func (h *BaseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) error {
	if r.Body == nil || r.Body == http.NoBody {
		if optional {
			return nil
		}
		return internal.NewValidationError("request body is required", internal.ErrCodeValidationFailed)
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return internal.NewValidationError("request body is required", internal.ErrCodeValidationFailed)
		}
		return internal.NewValidationError(fmt.Sprintf("invalid request body: %v", err), internal.ErrCodeValidationFailed)
	}
	return nil
}

// ParseUUIDParam reads a chi URL parameter as a UUID.
func (h *BaseHandler) ParseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, internal.ErrInvalidID.WithCause(err)
	}
	return id, nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// CurrentUser returns the authenticated caller or writes 401.
func (h *BaseHandler) CurrentUser(w http.ResponseWriter, r *http.Request) (*internal.User, bool) {
	u, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return u, true
}
