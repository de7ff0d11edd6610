package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hrtool/internal/core/events"
)

const (
	AttrEventType = "event_type"
	AttrEventID   = "event_id"
)

// Forwarder relays bus events onto a broker queue as JSON.
type Forwarder struct {
	backend Backend
	queue   string
	logger  *slog.Logger
}

func NewForwarder(backend Backend, queue string, logger *slog.Logger) *Forwarder {
	return &Forwarder{backend: backend, queue: queue, logger: logger}
}

func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event.EventID(), err)
	}
	id, err := f.backend.Publish(ctx, f.queue, body, map[string]string{
		AttrEventType: event.EventType(),
		AttrEventID:   event.EventID(),
	})
	if err != nil {
		return err
	}
	f.logger.Debug("event forwarded", "event_type", event.EventType(), "message_id", id, "queue", f.queue)
	return nil
}

// Register subscribes the forwarder to every event on bus.
func (f *Forwarder) Register(bus *events.EventBus) {
	bus.SubscribeAll(f.Handle)
}

// DecodeEvent turns a forwarded message back into an event.
func DecodeEvent(msg Message) (events.BaseEvent, error) {
	var e events.BaseEvent
	if err := json.Unmarshal(msg.Data, &e); err != nil {
		return events.BaseEvent{}, fmt.Errorf("failed to decode message %s: %w", msg.ID, err)
	}
	if e.Type == "" {
		e.Type = msg.Attributes[AttrEventType]
	}
	return e, nil
}
