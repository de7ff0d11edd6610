package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/companylink"
	companylinkDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/companylink"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyLinkRepository struct {
	db *gorm.DB
}

func NewCompanyLinkRepository(db *gorm.DB) companylink.RepositoryAPI {
	return &CompanyLinkRepository{db: db}
}

func (r *CompanyLinkRepository) GetByID(ctx context.Context, id uuid.UUID) (*companylinkDatamodel.CompanyLink, error) {
	var link companylinkDatamodel.CompanyLink
	err := database.Conn(ctx, r.db).Where("id = ?", id).Take(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *CompanyLinkRepository) GetAll(ctx context.Context) ([]*companylinkDatamodel.CompanyLink, error) {
	var links []*companylinkDatamodel.CompanyLink
	err := database.Conn(ctx, r.db).Order("title ASC").Order("id ASC").Find(&links).Error
	return links, err
}

func (r *CompanyLinkRepository) Create(ctx context.Context, link *companylinkDatamodel.CompanyLink) error {
	return database.Conn(ctx, r.db).Create(link).Error
}

func (r *CompanyLinkRepository) Update(ctx context.Context, link *companylinkDatamodel.CompanyLink) error {
	return database.Conn(ctx, r.db).Save(link).Error
}

func (r *CompanyLinkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&companylinkDatamodel.CompanyLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrLinkNotFound
	}
	return nil
}
