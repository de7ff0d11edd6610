package auth

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/validation"
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 100
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", strings.TrimSpace(d.Email)).Required().Email()
	v.Field("password", d.Password).Required().MinLength(PasswordMinLength).MaxLength(PasswordMaxLength)
	return v.Validate()
}
