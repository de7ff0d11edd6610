package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hrtool/internal"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/frahmantamala/hrtool/internal/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := database.Conn(ctx, r.db).Preload("Manager").Where("id = ?", id).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail expects a normalized address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := database.Conn(ctx, r.db).Where("email = ?", email).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := database.Conn(ctx, r.db).Preload("Manager").Order("first_name ASC, last_name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&userDatamodel.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := database.Conn(ctx, r.db).Model(&userDatamodel.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *UserRepository) Create(ctx context.Context, u *userDatamodel.User) error {
	return translate(database.Conn(ctx, r.db).Omit(clause.Associations).Create(u).Error)
}

func (r *UserRepository) Update(ctx context.Context, u *userDatamodel.User) error {
	return translate(database.Conn(ctx, r.db).Omit(clause.Associations).Save(u).Error)
}

// translate turns a unique-index violation into the conflict the API reports.
// Email is the only unique column besides the primary key.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return internal.ErrEmailTaken.WithCause(err)
	}
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&userDatamodel.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearManager(ctx context.Context, managerID uuid.UUID) error {
	return database.Conn(ctx, r.db).Model(&userDatamodel.User{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}
