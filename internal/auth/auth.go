package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Credentials is what login needs to know about a stored account.
type Credentials struct {
	UserID       uuid.UUID
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}

// Claims represents JWT token claims. The user id travels in the subject.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
}

type ServiceAPI interface {
	Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// TokenGenerator creates and verifies signed access tokens.
type TokenGenerator interface {
	GenerateToken(userID uuid.UUID, email, role string) (token string, expiresAt time.Time, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
