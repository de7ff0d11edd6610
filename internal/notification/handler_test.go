package notification_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Notification Handler", func() {
	var (
		router *chi.Mux
		now    time.Time
	)

	BeforeEach(func() {
		now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := notification.NewService(NewMockRepository(), internal.NoopUnitOfWork{}, lg,
			notification.WithClock(func() time.Time { return now }))
		handler := notification.NewHandler(transport.NewBaseHandler(lg), service)

		router = chi.NewRouter()
		router.Get("/api/notifications", handler.GetActive)
		router.Get("/api/notifications/admin", handler.GetAll)
		router.Post("/api/notifications/admin", handler.Create)
		router.Get("/api/notifications/admin/{id}", handler.GetByID)
		router.Put("/api/notifications/admin/{id}", handler.Update)
		router.Delete("/api/notifications/admin/{id}", handler.Delete)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	create := func(body string) notification.NotificationDTO {
		rec := do(http.MethodPost, "/api/notifications/admin", body)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created notification.NotificationDTO
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(rec.Header().Get("Location")).To(Equal("/api/notifications/admin/" + created.ID.String()))
		return created
	}

	It("creates, reads, updates and deletes a notification", func() {
		created := create(`{"title":"Office closed","message":"Friday"}`)
		Expect(created.IsActive).To(BeTrue())

		path := "/api/notifications/admin/" + created.ID.String()
		Expect(do(http.MethodGet, path, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPut, path, `{"title":"Office open","message":"Friday","is_active":true}`).Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, "/api/notifications", "").Body.String()).To(ContainSubstring("Office open"))

		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNotFound))
	})

	It("drops a notification from the active list once its expiry time has passed", func() {
		create(`{"title":"Standup moved","message":"Today only","expiry_date":"2026-10-19T08:00:00Z"}`)
		create(`{"title":"Town hall","message":"Tonight","expiry_date":"2026-10-19T18:00:00Z"}`)

		rec := do(http.MethodGet, "/api/notifications", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var active []notification.NotificationDTO
		Expect(json.Unmarshal(rec.Body.Bytes(), &active)).To(Succeed())
		Expect(active).To(HaveLen(1))
		Expect(active[0].Title).To(Equal("Town hall"))
		Expect(*active[0].ExpiryDate).To(Equal(time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)))

		all := do(http.MethodGet, "/api/notifications/admin", "")
		Expect(all.Body.String()).To(ContainSubstring("Standup moved"))
	})

	It("accepts a bare date as midnight UTC", func() {
		created := create(`{"title":"Holiday","message":"Closed","expiry_date":"2026-12-25"}`)
		Expect(*created.ExpiryDate).To(Equal(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC)))
	})

	It("returns 404 when updating an unknown notification", func() {
		rec := do(http.MethodPut, "/api/notifications/admin/"+uuid.NewString(), `{"title":"t","message":"m","is_active":true}`)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("NOTIFICATION_NOT_FOUND"))
	})

	It("returns 400 for a malformed id", func() {
		Expect(do(http.MethodGet, "/api/notifications/admin/not-a-uuid", "").Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPut, "/api/notifications/admin/not-a-uuid", `{"title":"t","message":"m"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodDelete, "/api/notifications/admin/not-a-uuid", "").Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects invalid content and unparseable expiry dates", func() {
		Expect(do(http.MethodPost, "/api/notifications/admin", `{"title":"","message":"m"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/api/notifications/admin", `{"title":"t","message":"m","expiry_date":"soon"}`).Code).To(Equal(http.StatusBadRequest))
	})

	It("returns an empty array when nothing is active", func() {
		rec := do(http.MethodGet, "/api/notifications", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`[]`))
	})
})
