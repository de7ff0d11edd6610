package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/hrtool/internal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   RepositoryAPI
	tokens TokenGenerator
	hasher PasswordHasher
	logger *slog.Logger
	// compared against for unknown emails so both failure paths cost one bcrypt run
	dummyHash string
}

const dummyPassword = "hrtool-dummy-password"

func NewService(repo RepositoryAPI, tokens TokenGenerator, hasher PasswordHasher, logger *slog.Logger) *Service {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Warn("password hasher failed, falling back to default bcrypt for the unknown-email hash", "error", err)
		dummy, err = NewBcryptHasher(bcrypt.DefaultCost).Hash(dummyPassword)
		if err != nil {
			logger.Error("failed to build unknown-email comparison hash", "error", err)
		}
	}
	return &Service{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		logger:    logger,
		dummyHash: dummy,
	}
}

// Authenticate verifies credentials and issues a signed token. Unknown emails,
// wrong passwords and deactivated accounts all yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	creds, err := s.repo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, internal.ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "failed to load credentials", "error", err)
			return nil, internal.NewInternalError("failed to authenticate", err)
		}
		_ = s.hasher.Compare(s.dummyHash, dto.Password)
		return nil, internal.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(creds.PasswordHash, dto.Password); err != nil {
		return nil, internal.ErrInvalidCredentials
	}

	if !creds.IsActive {
		s.logger.InfoContext(ctx, "login rejected for inactive user", "user_id", creds.UserID)
		return nil, internal.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(creds.UserID, creds.Email, creds.Role)
	if err != nil {
		return nil, internal.NewInternalError("failed to issue token", err)
	}

	s.logger.InfoContext(ctx, "user authenticated", "user_id", creds.UserID, "role", creds.Role)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	return s.tokens.ValidateToken(tokenString)
}
