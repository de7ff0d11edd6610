package notification

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/dates"
	"github.com/frahmantamala/hrtool/internal/core/common/validation"
	"github.com/google/uuid"
)

const (
	TitleMaxLength   = 200
	MessageMaxLength = 1000
)

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	ExpiryDate *time.Time `json:"expiry_date"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateNotificationDTO struct {
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	ExpiryDate *dates.Timestamp `json:"expiry_date"`
}

type UpdateNotificationDTO struct {
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	ExpiryDate *dates.Timestamp `json:"expiry_date"`
	IsActive   bool             `json:"is_active"`
}

func validateContent(title, message string) *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", strings.TrimSpace(title)).Required().MaxLength(TitleMaxLength)
	v.Field("message", strings.TrimSpace(message)).Required().MaxLength(MessageMaxLength)
	return v.Validate()
}

func (d CreateNotificationDTO) Validate() *internal.AppError {
	return validateContent(d.Title, d.Message)
}

func (d UpdateNotificationDTO) Validate() *internal.AppError {
	return validateContent(d.Title, d.Message)
}

func ToNotificationDTO(n *Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		IsActive:  n.IsActive,
		CreatedAt: n.CreatedAt,
	}
	if n.ExpiryDate != nil {
		t := n.ExpiryDate.UTC()
		dto.ExpiryDate = &t
	}
	return dto
}
