package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID         uuid.UUID  `gorm:"column:id;primaryKey;size:36"`
	Title      string     `gorm:"column:title;size:200;not null"`
	Message    string     `gorm:"column:message;size:1000;not null"`
	ExpiryDate *time.Time `gorm:"column:expiry_date"`
	IsActive   bool       `gorm:"column:is_active;not null"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
