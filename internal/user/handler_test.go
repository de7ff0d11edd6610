package user_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/frahmantamala/hrtool/internal/database/dbtest"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/frahmantamala/hrtool/internal/user"
	userPostgres "github.com/frahmantamala/hrtool/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("User Handler Integration", func() {
	var (
		db     *gorm.DB
		repo   user.RepositoryAPI
		router *chi.Mux
		admin  *userDatamodel.User
		member *userDatamodel.User
		caller *internal.User
	)

	BeforeEach(func() {
		ctx := context.Background()
		var err error
		db, err = dbtest.Open(ctx)
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = userPostgres.NewUserRepository(db)
		service := user.NewService(repo, database.NewUnitOfWork(db), plainHasher{}, slogger)
		handler := user.NewHandler(transport.NewBaseHandler(slogger), service)

		admin = &userDatamodel.User{FirstName: "Root", LastName: "Admin", Email: "admin@example.com", Role: internal.RoleAdmin,
			DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true, PasswordHash: "x"}
		member = &userDatamodel.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: internal.RoleUser,
			DateOfBirth: time.Date(1985, 12, 10, 0, 0, 0, 0, time.UTC), IsActive: true, PasswordHash: "x",
			Address: userDatamodel.Address{City: "London", Country: "UK"}}
		Expect(repo.Create(ctx, admin)).To(Succeed())
		Expect(repo.Create(ctx, member)).To(Succeed())
		caller = &internal.User{ID: member.ID, Email: member.Email, Role: internal.RoleUser}

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), caller)))
			})
		})
		router.Get("/api/user/me", handler.GetMe)
		router.Put("/api/user/me", handler.UpdateMe)
		router.Put("/api/user/me/outofoffice", handler.SetOutOfOffice)
		router.Delete("/api/user/me/outofoffice", handler.ClearOutOfOffice)
		router.Get("/api/directory", handler.GetDirectory)
		router.Get("/api/user/new", handler.GetNewUsers)
		router.Get("/api/user/outofoffice", handler.GetOutOfOffice)
		router.Get("/api/user/admin/users", handler.ListUsers)
		router.Post("/api/user/admin/users", handler.CreateUser)
		router.Get("/api/user/admin/users/{id}", handler.GetUser)
		router.Put("/api/user/admin/users/{id}", handler.UpdateUser)
		router.Delete("/api/user/admin/users/{id}", handler.DeleteUser)
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("returns the caller's profile", func() {
		rec := do(http.MethodGet, "/api/user/me", nil)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var profile map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &profile)).To(Succeed())
		Expect(profile["email"]).To(Equal("ada@example.com"))
		Expect(profile["date_of_birth"]).To(Equal("1985-12-10"))
		Expect(profile).NotTo(HaveKey("password_hash"))
	})

	It("updates the caller's profile", func() {
		rec := do(http.MethodPut, "/api/user/me", map[string]interface{}{
			"first_name":    "Augusta",
			"last_name":     "King",
			"email":         "augusta@example.com",
			"date_of_birth": "1815-12-10",
			"address":       map[string]string{"city": "London", "country": "UK"},
		})
		Expect(rec.Code).To(Equal(http.StatusNoContent))

		stored, err := repo.GetByID(context.Background(), member.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.FirstName).To(Equal("Augusta"))
	})

	It("rejects a future birth date with 400", func() {
		rec := do(http.MethodPut, "/api/user/me", map[string]interface{}{
			"first_name":    "Ada",
			"last_name":     "Lovelace",
			"email":         "ada@example.com",
			"date_of_birth": time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		})
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("sets out of office for today when the body is empty and hides the caller from the directory", func() {
		req := httptest.NewRequest(http.MethodPut, "/api/user/me/outofoffice", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusNoContent))

		dir := do(http.MethodGet, "/api/directory", nil)
		Expect(dir.Code).To(Equal(http.StatusOK))
		var entries []user.DirectoryUserDTO
		Expect(json.Unmarshal(dir.Body.Bytes(), &entries)).To(Succeed())
		Expect(entries).To(HaveLen(1))
		Expect(entries[0].FirstName).To(Equal("Root"))

		away := do(http.MethodGet, "/api/user/outofoffice", nil)
		Expect(away.Body.String()).To(ContainSubstring("ada@example.com"))

		Expect(do(http.MethodDelete, "/api/user/me/outofoffice", nil).Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, "/api/directory", nil).Body.String()).To(ContainSubstring("Lovelace"))
	})

	It("treats an empty chunked body as out of office for today", func() {
		req := httptest.NewRequest(http.MethodPut, "/api/user/me/outofoffice", struct{ io.Reader }{strings.NewReader("")})
		Expect(req.ContentLength).To(Equal(int64(-1)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusNoContent))

		stored, err := repo.GetByID(context.Background(), member.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.OutOfOfficeUntil).NotTo(BeNil())
	})

	It("rejects a malformed out-of-office body", func() {
		req := httptest.NewRequest(http.MethodPut, "/api/user/me/outofoffice", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects a past out-of-office end date", func() {
		rec := do(http.MethodPut, "/api/user/me/outofoffice", map[string]string{"end_date": "2000-01-01"})
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("validates the days and date query parameters", func() {
		Expect(do(http.MethodGet, "/api/user/new?days=abc", nil).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/api/user/new?days=0", nil).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/api/user/new", nil).Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/api/user/outofoffice?date=31-12-2024", nil).Code).To(Equal(http.StatusBadRequest))
	})

	Context("as an admin", func() {
		BeforeEach(func() {
			caller = &internal.User{ID: admin.ID, Email: admin.Email, Role: internal.RoleAdmin}
		})

		newUserBody := func(email string) map[string]interface{} {
			return map[string]interface{}{
				"first_name":    "New",
				"last_name":     "Hire",
				"email":         email,
				"date_of_birth": "1995-05-05",
				"role":          "User",
				"password":      "secret123",
				"manager_id":    admin.ID,
			}
		}

		It("creates a user with 201 and returns it", func() {
			rec := do(http.MethodPost, "/api/user/admin/users", newUserBody("new@example.com"))
			Expect(rec.Code).To(Equal(http.StatusCreated))

			var created user.AdminUserDTO
			Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ManagerName).NotTo(BeNil())
			Expect(*created.ManagerName).To(Equal("Root Admin"))
			Expect(rec.Header().Get("Location")).To(HaveSuffix(created.ID.String()))

			get := do(http.MethodGet, "/api/user/admin/users/"+created.ID.String(), nil)
			Expect(get.Code).To(Equal(http.StatusOK))
		})

		It("returns 409 for a duplicate email", func() {
			rec := do(http.MethodPost, "/api/user/admin/users", newUserBody("ADA@example.com"))
			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("EMAIL_ALREADY_EXISTS"))
		})

		It("returns 400 for a malformed id and 404 for an unknown one", func() {
			Expect(do(http.MethodGet, "/api/user/admin/users/not-a-uuid", nil).Code).To(Equal(http.StatusBadRequest))
			Expect(do(http.MethodGet, "/api/user/admin/users/"+"00000000-0000-0000-0000-000000000001", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("updates and deletes users", func() {
			body := newUserBody("ada@example.com")
			delete(body, "password")
			body["is_active"] = false
			Expect(do(http.MethodPut, "/api/user/admin/users/"+member.ID.String(), body).Code).To(Equal(http.StatusNoContent))

			list := do(http.MethodGet, "/api/user/admin/users", nil)
			Expect(list.Body.String()).To(ContainSubstring(`"is_active":false`))

			Expect(do(http.MethodDelete, "/api/user/admin/users/"+member.ID.String(), nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodDelete, "/api/user/admin/users/"+member.ID.String(), nil).Code).To(Equal(http.StatusNotFound))
		})

		It("refuses self deletion with 400", func() {
			Expect(do(http.MethodDelete, "/api/user/admin/users/"+admin.ID.String(), nil).Code).To(Equal(http.StatusBadRequest))
		})
	})
})
