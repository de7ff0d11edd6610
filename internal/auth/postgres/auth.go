package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/auth"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// GetCredentialsByEmail expects the email already normalized to lower case.
func (r *Repository) GetCredentialsByEmail(ctx context.Context, email string) (*auth.Credentials, error) {
	var row userDatamodel.User
	err := r.db.WithContext(ctx).
		Select("id", "email", "role", "password_hash", "is_active").
		Where("email = ?", email).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.Credentials{
		UserID:       row.ID,
		Email:        row.Email,
		Role:         row.Role,
		PasswordHash: row.PasswordHash,
		IsActive:     row.IsActive,
	}, nil
}
