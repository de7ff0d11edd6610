package companylink_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/companylink"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Company Link Handler", func() {
	var router *chi.Mux

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := companylink.NewService(NewMockRepository(), internal.NoopUnitOfWork{}, lg)
		handler := companylink.NewHandler(transport.NewBaseHandler(lg), service)

		router = chi.NewRouter()
		router.Get("/api/companylinks", handler.GetAll)
		router.Post("/api/companylinks/admin", handler.Create)
		router.Get("/api/companylinks/admin/{id}", handler.GetByID)
		router.Put("/api/companylinks/admin/{id}", handler.Update)
		router.Delete("/api/companylinks/admin/{id}", handler.Delete)
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body)).WithContext(context.Background())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("creates, reads, updates and deletes a link", func() {
		rec := do(http.MethodPost, "/api/companylinks/admin", `{"title":"Wiki","url":"https://wiki.example"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created companylink.CompanyLinkDTO
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(rec.Header().Get("Location")).To(Equal("/api/companylinks/admin/" + created.ID.String()))

		path := "/api/companylinks/admin/" + created.ID.String()
		Expect(do(http.MethodGet, path, "").Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodPut, path, `{"title":"Wiki 2","url":"https://wiki2.example"}`).Code).To(Equal(http.StatusNoContent))

		list := do(http.MethodGet, "/api/companylinks", "")
		Expect(list.Code).To(Equal(http.StatusOK))
		Expect(list.Body.String()).To(ContainSubstring("Wiki 2"))

		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, path, "").Code).To(Equal(http.StatusNotFound))
	})

	It("returns an empty array when there are no links", func() {
		rec := do(http.MethodGet, "/api/companylinks", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(MatchJSON(`[]`))
	})

	It("rejects a non-http url and a malformed body", func() {
		Expect(do(http.MethodPost, "/api/companylinks/admin", `{"title":"x","url":"mailto:a@b.c"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/api/companylinks/admin", `{"title":`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodGet, "/api/companylinks/admin/nope", "").Code).To(Equal(http.StatusBadRequest))
	})
})
