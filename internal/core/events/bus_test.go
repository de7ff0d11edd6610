package events_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

var _ = Describe("EventBus", func() {
	var (
		out *syncBuffer
		bus *events.EventBus
		ctx context.Context
	)

	BeforeEach(func() {
		out = &syncBuffer{}
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(out, nil)))
		ctx = context.Background()
	})

	It("delivers to typed and global handlers", func() {
		var typed, global int32
		bus.Subscribe(events.EventTypeUserCreated, func(context.Context, events.Event) error {
			atomic.AddInt32(&typed, 1)
			return nil
		})
		bus.SubscribeAll(func(context.Context, events.Event) error {
			atomic.AddInt32(&global, 1)
			return nil
		})

		Expect(bus.Publish(ctx, events.NewEvent(ctx, events.EventTypeUserCreated, uuid.New(), nil))).To(Succeed())
		Expect(bus.Publish(ctx, events.NewEvent(ctx, events.EventTypeUserDeleted, uuid.New(), nil))).To(Succeed())
		Expect(bus.Wait(ctx)).To(Succeed())

		Expect(atomic.LoadInt32(&typed)).To(Equal(int32(1)))
		Expect(atomic.LoadInt32(&global)).To(Equal(int32(2)))
	})

	It("runs async handlers after the publishing context is cancelled", func() {
		reqCtx, cancel := context.WithCancel(ctx)
		var seen error
		bus.SubscribeAll(func(hctx context.Context, _ events.Event) error {
			seen = hctx.Err()
			return nil
		})
		cancel()
		Expect(bus.Publish(reqCtx, events.NewEvent(reqCtx, events.EventTypeNotificationCreated, uuid.New(), nil))).To(Succeed())
		Expect(bus.Wait(ctx)).To(Succeed())
		Expect(seen).To(BeNil())
	})

	It("surfaces handler errors from PublishSync", func() {
		bus.Subscribe(events.EventTypeCompanyLinkDeleted, func(context.Context, events.Event) error {
			return errors.New("boom")
		})
		err := bus.PublishSync(ctx, events.NewEvent(ctx, events.EventTypeCompanyLinkDeleted, uuid.New(), nil))
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("stamps the acting user on new events", func() {
		actor := &internal.User{ID: uuid.New(), Email: "admin@hrtool.local", Role: internal.RoleAdmin}
		e := events.NewEvent(internal.ContextWithUser(ctx, actor), events.EventTypeUserUpdated, uuid.New(), nil)
		Expect(e.ActorID).To(Equal(actor.ID.String()))
		Expect(e.ID).NotTo(BeEmpty())
	})

	It("writes an audit line per event", func() {
		bus.SubscribeAll(events.AuditHandler(slog.New(slog.NewTextHandler(out, nil))))
		id := uuid.New()
		Expect(bus.PublishSync(ctx, events.NewEvent(ctx, events.EventTypeUserOutOfOfficeSet, id, nil))).To(Succeed())
		Expect(out.String()).To(ContainSubstring("event_type=user.out_of_office_set"))
		Expect(out.String()).To(ContainSubstring(id.String()))
	})
})
