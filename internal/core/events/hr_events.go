package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/google/uuid"
)

const (
	EventTypeUserCreated          = "user.created"
	EventTypeUserUpdated          = "user.updated"
	EventTypeUserDeleted          = "user.deleted"
	EventTypeUserProfileUpdated   = "user.profile_updated"
	EventTypeUserOutOfOfficeSet   = "user.out_of_office_set"
	EventTypeUserOutOfOfficeClear = "user.out_of_office_cleared"
	EventTypeNotificationCreated  = "notification.created"
	EventTypeNotificationUpdated  = "notification.updated"
	EventTypeNotificationDeleted  = "notification.deleted"
	EventTypeCompanyLinkCreated   = "companylink.created"
	EventTypeCompanyLinkUpdated   = "companylink.updated"
	EventTypeCompanyLinkDeleted   = "companylink.deleted"
)

// NewEvent stamps an event with a fresh id and the authenticated caller, if any.
func NewEvent(ctx context.Context, eventType string, aggregateID uuid.UUID, data map[string]interface{}) BaseEvent {
	e := BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		AggregateID: aggregateID.String(),
		Timestamp:   time.Now().UTC(),
		Data:        data,
	}
	if actor, ok := internal.UserFromContext(ctx); ok {
		e.ActorID = actor.ID.String()
	}
	return e
}

// Emit publishes and logs, but never fails, the caller's operation.
func Emit(ctx context.Context, pub Publisher, lg *slog.Logger, event Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil && lg != nil {
		lg.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

// AuditHandler writes one structured log line per event.
func AuditHandler(lg *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
		}
		if be, ok := event.(BaseEvent); ok {
			attrs = append(attrs, "aggregate_id", be.AggregateID, "actor_id", be.ActorID)
		}
		lg.InfoContext(ctx, "audit", attrs...)
		return nil
	}
}
