package mq_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/frahmantamala/hrtool/internal/mq"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type memoryBackend struct {
	mu        sync.Mutex
	published []mq.Message
	queues    []string
	err       error
}

func (m *memoryBackend) Publish(_ context.Context, queue string, data []byte, attrs map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	id := uuid.NewString()
	m.published = append(m.published, mq.Message{ID: id, Data: data, Attributes: attrs})
	m.queues = append(m.queues, queue)
	return id, nil
}

func (m *memoryBackend) Subscribe(context.Context, string, mq.Handler) error { return nil }
func (m *memoryBackend) Close() error                                        { return nil }

func (m *memoryBackend) messages() []mq.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mq.Message(nil), m.published...)
}

var _ = Describe("Forwarder", func() {
	var (
		backend *memoryBackend
		logger  *slog.Logger
	)

	BeforeEach(func() {
		backend = &memoryBackend{}
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	It("publishes the event as JSON with type attributes", func() {
		fwd := mq.NewForwarder(backend, "hr.events", logger)
		id := uuid.New()
		event := events.NewEvent(context.Background(), events.EventTypeUserCreated, id, map[string]interface{}{"email": "a@b.c"})

		Expect(fwd.Handle(context.Background(), event)).To(Succeed())

		msgs := backend.messages()
		Expect(msgs).To(HaveLen(1))
		Expect(backend.queues).To(ConsistOf("hr.events"))
		Expect(msgs[0].Attributes).To(HaveKeyWithValue(mq.AttrEventType, events.EventTypeUserCreated))

		decoded, err := mq.DecodeEvent(msgs[0])
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.ID).To(Equal(event.ID))
		Expect(decoded.AggregateID).To(Equal(id.String()))
		Expect(decoded.Data).To(HaveKeyWithValue("email", "a@b.c"))
	})

	It("returns backend failures", func() {
		backend.err = errors.New("broker down")
		fwd := mq.NewForwarder(backend, "hr.events", logger)
		event := events.NewEvent(context.Background(), events.EventTypeNotificationDeleted, uuid.New(), nil)
		Expect(fwd.Handle(context.Background(), event)).To(MatchError("broker down"))
	})

	It("receives every event once registered on the bus", func() {
		bus := events.NewEventBus(logger)
		mq.NewForwarder(backend, "hr.events", logger).Register(bus)

		ctx := context.Background()
		Expect(bus.Publish(ctx, events.NewEvent(ctx, events.EventTypeCompanyLinkCreated, uuid.New(), nil))).To(Succeed())
		Expect(bus.Publish(ctx, events.NewEvent(ctx, events.EventTypeUserDeleted, uuid.New(), nil))).To(Succeed())
		Expect(bus.Wait(ctx)).To(Succeed())

		Expect(backend.messages()).To(HaveLen(2))
	})

	It("rejects undecodable payloads", func() {
		_, err := mq.DecodeEvent(mq.Message{ID: "x", Data: []byte("{")})
		Expect(err).To(HaveOccurred())
	})
})
