package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/hrtool/internal"
	notificationDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/notification"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.RepositoryAPI {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*notificationDatamodel.Notification, error) {
	var n notificationDatamodel.Notification
	err := database.Conn(ctx, r.db).Where("id = ?", id).Take(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) GetAll(ctx context.Context) ([]*notificationDatamodel.Notification, error) {
	var items []*notificationDatamodel.Notification
	err := database.Conn(ctx, r.db).Find(&items).Error
	return items, err
}

func (r *NotificationRepository) Create(ctx context.Context, n *notificationDatamodel.Notification) error {
	return database.Conn(ctx, r.db).Create(n).Error
}

func (r *NotificationRepository) Update(ctx context.Context, n *notificationDatamodel.Notification) error {
	return database.Conn(ctx, r.db).Save(n).Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := database.Conn(ctx, r.db).Where("id = ?", id).Delete(&notificationDatamodel.Notification{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrNotificationNotFound
	}
	return nil
}
