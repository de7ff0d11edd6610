package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/hrtool/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("Middleware", func() {
	var lg *slog.Logger

	BeforeEach(func() {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	Describe("RecoveryMiddleware", func() {
		It("hides panic details outside development", func() {
			rec := httptest.NewRecorder()
			RecoveryMiddleware(lg, false)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(rec.Code).To(Equal(http.StatusInternalServerError))
			Expect(rec.Body.String()).NotTo(ContainSubstring("boom"))
			Expect(rec.Body.String()).To(ContainSubstring("An unexpected error occurred."))
		})

		It("includes the panic value and stack in development", func() {
			rec := httptest.NewRecorder()
			RecoveryMiddleware(lg, true)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			var body panicResponse
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Panic).To(Equal("boom"))
			Expect(body.Stack).NotTo(BeEmpty())
		})
	})

	Describe("RequestID", func() {
		It("echoes the caller's id and stores a request logger", func() {
			var sawLogger bool
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				_, sawLogger = logger.FromContext(r.Context())
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			rec := httptest.NewRecorder()
			RequestID(next).ServeHTTP(rec, req)

			Expect(rec.Header().Get(RequestIDHeader)).To(Equal("abc-123"))
			Expect(sawLogger).To(BeTrue())
		})

		It("generates an id when none is supplied", func() {
			rec := httptest.NewRecorder()
			RequestID(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(rec.Header().Get(RequestIDHeader)).NotTo(BeEmpty())
		})
	})

	Describe("CORS", func() {
		ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

		It("answers preflight requests for allowed origins", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/directory", nil)
			req.Header.Set("Origin", "http://localhost:3000")
			req.Header.Set("Access-Control-Request-Method", "GET")
			rec := httptest.NewRecorder()
			CORS("http://localhost:3000, https://hr.example.com")(ok).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		})

		It("does not echo unknown origins", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://evil.example")
			rec := httptest.NewRecorder()
			CORS("https://hr.example.com")(ok).ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
		})

		It("allows any origin with a wildcard", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", "https://anything.example")
			rec := httptest.NewRecorder()
			CORS("*")(ok).ServeHTTP(rec, req)
			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://anything.example"))
		})
	})

	Describe("LoggingMiddleware", func() {
		It("masks passwords and tokens in logged bodies", func() {
			var out bytes.Buffer
			debugLogger := slog.New(slog.NewJSONHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				Expect(string(body)).To(ContainSubstring("hunter22"))
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte(`{"token":"eyJhbGciOi","expires_at":"soon"}`))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"email":"a@b.c","password":"hunter22"}`))
			req.Header.Set("Authorization", "Bearer secret")
			LoggingMiddleware(debugLogger)(next).ServeHTTP(httptest.NewRecorder(), req)

			Expect(out.String()).To(ContainSubstring("http request"))
			Expect(out.String()).NotTo(ContainSubstring("hunter22"))
			Expect(out.String()).NotTo(ContainSubstring("eyJhbGciOi"))
			Expect(out.String()).NotTo(ContainSubstring("Bearer secret"))
		})

		It("masks nested JSON fields", func() {
			filtered := filterSensitiveBody([]byte(`{"user":{"password":"x","name":"ada"},"items":[{"token":"t"}]}`))
			Expect(filtered).To(ContainSubstring(`"name":"ada"`))
			Expect(filtered).NotTo(ContainSubstring(`"x"`))
			Expect(filtered).NotTo(ContainSubstring(`"t"`))
		})
	})
})
