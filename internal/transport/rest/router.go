package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/hrtool/internal/auth"
	"github.com/frahmantamala/hrtool/internal/companylink"
	"github.com/frahmantamala/hrtool/internal/dashboard"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/frahmantamala/hrtool/internal/transport/middleware"
	"github.com/frahmantamala/hrtool/internal/transport/swagger"
	"github.com/frahmantamala/hrtool/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Auth         *auth.Handler
	RBAC         *auth.RBACAuthorization
	User         *user.Handler
	Notification *notification.Handler
	CompanyLink  *companylink.Handler
	Dashboard    *dashboard.Handler
	Health       *HealthHandler
	OpenAPI      http.Handler
}

type Options struct {
	AllowedOrigins string
	// ExposePanics writes panic values and stacks into 500 responses.
	ExposePanics bool
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger, opts.ExposePanics))

	if h.OpenAPI != nil {
		router.Handle("/openapi.yml", h.OpenAPI)
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	router.Route("/api", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/directory", h.User.GetDirectory)
			pr.Get("/dashboard", h.Dashboard.GetDashboard)

			pr.Route("/user", func(ur chi.Router) {
				ur.Get("/me", h.User.GetMe)
				ur.Put("/me", h.User.UpdateMe)
				ur.Put("/me/outofoffice", h.User.SetOutOfOffice)
				ur.Delete("/me/outofoffice", h.User.ClearOutOfOffice)
				ur.Get("/birthdays/today", h.User.GetBirthdaysToday)
				ur.Get("/birthdays/tomorrow", h.User.GetBirthdaysTomorrow)
				ur.Get("/new", h.User.GetNewUsers)
				ur.Get("/outofoffice", h.User.GetOutOfOffice)

				ur.Route("/admin/users", func(ar chi.Router) {
					ar.Use(h.RBAC.RequireAdmin())
					ar.Get("/", h.User.ListUsers)
					ar.Post("/", h.User.CreateUser)
					ar.Get("/{id}", h.User.GetUser)
					ar.Put("/{id}", h.User.UpdateUser)
					ar.Delete("/{id}", h.User.DeleteUser)
				})
			})

			pr.Route("/notifications", func(nr chi.Router) {
				nr.Get("/", h.Notification.GetActive)
				nr.Route("/admin", func(ar chi.Router) {
					ar.Use(h.RBAC.RequireAdmin())
					ar.Get("/", h.Notification.GetAll)
					ar.Post("/", h.Notification.Create)
					ar.Get("/{id}", h.Notification.GetByID)
					ar.Put("/{id}", h.Notification.Update)
					ar.Delete("/{id}", h.Notification.Delete)
				})
			})

			pr.Route("/companylinks", func(cr chi.Router) {
				cr.Get("/", h.CompanyLink.GetAll)
				cr.Route("/admin", func(ar chi.Router) {
					ar.Use(h.RBAC.RequireAdmin())
					ar.Post("/", h.CompanyLink.Create)
					ar.Get("/{id}", h.CompanyLink.GetByID)
					ar.Put("/{id}", h.CompanyLink.Update)
					ar.Delete("/{id}", h.CompanyLink.Delete)
				})
			})
		})
	})
}
