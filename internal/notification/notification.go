package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/notification"
	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID
	Title      string
	Message    string
	ExpiryDate *time.Time
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VisibleAt reports whether employees should see the notification at now.
// A notification expiring exactly at now is still visible.
func (n *Notification) VisibleAt(now time.Time) bool {
	if !n.IsActive {
		return false
	}
	return n.ExpiryDate == nil || !n.ExpiryDate.Before(now)
}

func (n *Notification) ToDataModel() *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:         n.ID,
		Title:      n.Title,
		Message:    n.Message,
		ExpiryDate: n.ExpiryDate,
		IsActive:   n.IsActive,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func FromDataModel(dm *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:         dm.ID,
		Title:      dm.Title,
		Message:    dm.Message,
		ExpiryDate: dm.ExpiryDate,
		IsActive:   dm.IsActive,
		CreatedAt:  dm.CreatedAt,
		UpdatedAt:  dm.UpdatedAt,
	}
}

// expiresAfter orders a before b when a expires later. No expiry counts as latest.
func expiresAfter(a, b *Notification) bool {
	switch {
	case a.ExpiryDate == nil && b.ExpiryDate == nil:
		return a.ID.String() > b.ID.String()
	case a.ExpiryDate == nil:
		return true
	case b.ExpiryDate == nil:
		return false
	case !a.ExpiryDate.Equal(*b.ExpiryDate):
		return a.ExpiryDate.After(*b.ExpiryDate)
	default:
		return a.ID.String() > b.ID.String()
	}
}
