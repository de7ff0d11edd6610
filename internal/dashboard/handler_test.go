package dashboard_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/companylink"
	"github.com/frahmantamala/hrtool/internal/dashboard"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/frahmantamala/hrtool/internal/user"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Dashboard Handler", func() {
	var (
		users         *stubUsers
		notifications *stubNotifications
		caller        *internal.User
		router        *chi.Mux
	)

	BeforeEach(func() {
		now := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
		users = &stubUsers{
			profile:   &user.ProfileDTO{FirstName: "Ada"},
			awayOn:    map[string][]user.ProfileDTO{"2025-03-16": {{FirstName: "Linus"}}},
			birthdays: []user.ProfileDTO{},
			recent:    []user.ProfileDTO{},
		}
		notifications = &stubNotifications{items: []notification.NotificationDTO{{Title: "Welcome"}}}
		links := &stubLinks{links: []companylink.CompanyLinkDTO{{Title: "Wiki"}}}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := dashboard.NewService(users, notifications, links, lg, dashboard.WithClock(func() time.Time { return now }))
		handler := dashboard.NewHandler(transport.NewBaseHandler(lg), service)

		caller = nil
		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if caller != nil {
					r = r.WithContext(internal.ContextWithUser(r.Context(), caller))
				}
				next.ServeHTTP(w, r)
			})
		})
		router.Get("/api/dashboard", handler.GetDashboard)
	})

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
		return rec
	}

	It("returns 401 without an authenticated caller", func() {
		rec := get()
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})

	It("renders every panel for an authenticated caller", func() {
		caller = &internal.User{ID: uuid.New(), Role: internal.RoleUser}

		rec := get()
		Expect(rec.Code).To(Equal(http.StatusOK))
		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["greeting"]).To(Equal("Good morning, Ada!"))
		Expect(body["notifications"]).To(HaveLen(1))
		Expect(body["out_of_office_tomorrow"]).To(HaveLen(1))
		Expect(body).To(HaveKey("out_of_office_today"))
		Expect(body).To(HaveKey("birthdays_today"))
		Expect(body).To(HaveKey("new_users"))
		Expect(body["company_links"]).To(HaveLen(1))
	})

	It("uses the generic greeting when the caller's profile is gone", func() {
		caller = &internal.User{ID: uuid.New(), Role: internal.RoleUser}
		users.profile = nil
		users.profileErr = internal.ErrUserNotFound

		rec := get()
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"greeting":"Good morning!"`))
	})

	It("hides internal failures behind a 500", func() {
		caller = &internal.User{ID: uuid.New(), Role: internal.RoleAdmin}
		notifications.err = errors.New("connection refused on 10.0.0.5")

		rec := get()
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("10.0.0.5"))
	})
})
