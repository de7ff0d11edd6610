package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		rbac     *RBACAuthorization
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		hasher := NewBcryptHasher(bcrypt.MinCost)
		tokenGen = newTestTokenGenerator(nil)
		svc := NewService(newMockCredentialRepository(hasher), tokenGen, hasher, lg)
		base := transport.NewBaseHandler(lg)
		handler = NewHandler(base, svc)
		rbac = NewRBACAuthorization(base, lg)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return 200 with token and expires_at", func() {
			rec := login(`{"email":"user@example.com","password":"correct_password"}`)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			var body map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKey("token"))
			gomega.Expect(body).To(gomega.HaveKey("expires_at"))
		})

		ginkgo.It("should return 401 for bad credentials", func() {
			rec := login(`{"email":"user@example.com","password":"wrong_password"}`)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("INVALID_CREDENTIALS"))
		})

		ginkgo.It("should return 400 for malformed input", func() {
			gomega.Expect(login(`{"email":"nope","password":"correct_password"}`).Code).To(gomega.Equal(http.StatusBadRequest))
			gomega.Expect(login(`not json`).Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware and RBAC", func() {
		var protected http.Handler

		ginkgo.BeforeEach(func() {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u, ok := internal.UserFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				w.Header().Set("X-User-Role", u.Role)
				w.WriteHeader(http.StatusNoContent)
			})
			protected = handler.AuthMiddleware(rbac.RequireAdmin()(inner))
		})

		call := func(token string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/user/admin/users", nil)
			if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			return rec
		}

		ginkgo.It("should return 401 without a token", func() {
			gomega.Expect(call("").Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 401 for a garbage token", func() {
			gomega.Expect(call("abc.def.ghi").Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 403 for a non-admin", func() {
			token, _, err := tokenGen.GenerateToken(uuid.New(), "user@example.com", internal.RoleUser)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(call(token).Code).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should pass an admin through with the caller in context", func() {
			token, _, err := tokenGen.GenerateToken(uuid.New(), "admin@example.com", internal.RoleAdmin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			rec := call(token)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(rec.Header().Get("X-User-Role")).To(gomega.Equal(internal.RoleAdmin))
		})
	})
})
