package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/hrtool/api"
	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/auth"
	authPostgres "github.com/frahmantamala/hrtool/internal/auth/postgres"
	"github.com/frahmantamala/hrtool/internal/bootstrap"
	"github.com/frahmantamala/hrtool/internal/companylink"
	companylinkPostgres "github.com/frahmantamala/hrtool/internal/companylink/postgres"
	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/frahmantamala/hrtool/internal/dashboard"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/frahmantamala/hrtool/internal/mq"
	"github.com/frahmantamala/hrtool/internal/notification"
	notificationPostgres "github.com/frahmantamala/hrtool/internal/notification/postgres"
	"github.com/frahmantamala/hrtool/internal/transport"
	"github.com/frahmantamala/hrtool/internal/transport/rest"
	"github.com/frahmantamala/hrtool/internal/user"
	userPostgres "github.com/frahmantamala/hrtool/internal/user/postgres"
	"github.com/frahmantamala/hrtool/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *gorm.DB
	Router   *chi.Mux
	EventBus *events.EventBus
	Broker   mq.Backend
	Logger   *slog.Logger
}

func startHTTPServer() {
	config, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	deps, err := InitializeDependencies(context.Background(), config, logger.L())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr, "env", deps.Config.Env, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.Close(ctx); err != nil {
			slog.Error("Dependency shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			_ = deps.Close(context.Background())
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// InitializeDependencies opens the database, applies migrations, seeds the
// admin account and wires every handler into a router.
func InitializeDependencies(ctx context.Context, config *internal.Config, lg *slog.Logger) (*Dependencies, error) {
	db, err := database.Open(ctx, config.Database, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	deps := &Dependencies{Config: config, DB: db, Logger: lg}
	if err := deps.wire(ctx); err != nil {
		_ = deps.Close(ctx)
		return nil, err
	}
	return deps, nil
}

func (d *Dependencies) wire(ctx context.Context) error {
	cfg, lg := d.Config, d.Logger

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, d.DB, cfg.Database.Driver, lg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	d.EventBus = events.NewEventBus(lg)
	d.EventBus.SubscribeAll(events.AuditHandler(lg))
	if cfg.Messaging.RabbitMQURL != "" {
		broker, err := mq.NewRabbitMQClient(cfg.Messaging)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		d.Broker = broker
		mq.NewForwarder(broker, cfg.Messaging.EventsQueue, lg).Register(d.EventBus)
		lg.Info("forwarding domain events", "queue", cfg.Messaging.EventsQueue)
	}

	uow := database.NewUnitOfWork(d.DB)
	hasher := auth.NewBcryptHasher(cfg.Security.BCryptCost)
	tokens := auth.NewJWTTokenGenerator(cfg.Security)

	userRepo := userPostgres.NewUserRepository(d.DB)
	notificationRepo := notificationPostgres.NewNotificationRepository(d.DB)
	linkRepo := companylinkPostgres.NewCompanyLinkRepository(d.DB)

	seeder := bootstrap.NewSeeder(userRepo, notificationRepo, linkRepo, uow, hasher, lg)
	if err := seeder.SeedAdmin(ctx, cfg.Bootstrap); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if cfg.Bootstrap.SeedTestData {
		if err := seeder.SeedTestData(ctx, cfg.Bootstrap); err != nil {
			return fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	authService := auth.NewService(authPostgres.NewRepository(d.DB), tokens, hasher, lg)
	userService := user.NewService(userRepo, uow, hasher, lg, user.WithPublisher(d.EventBus))
	notificationService := notification.NewService(notificationRepo, uow, lg, notification.WithPublisher(d.EventBus))
	linkService := companylink.NewService(linkRepo, uow, lg, companylink.WithPublisher(d.EventBus))
	dashboardService := dashboard.NewService(userService, notificationService, linkService, lg)

	if _, err := api.Load(ctx); err != nil {
		return err
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	base := transport.NewBaseHandler(lg)
	handlers := rest.Handlers{
		Auth:         auth.NewHandler(base, authService),
		RBAC:         auth.NewRBACAuthorization(base, lg),
		User:         user.NewHandler(base, userService),
		Notification: notification.NewHandler(base, notificationService),
		CompanyLink:  companylink.NewHandler(base, linkService),
		Dashboard:    dashboard.NewHandler(base, dashboardService),
		Health:       rest.NewHealthHandler(sqlx.NewDb(sqlDB, sqlxDriverName(cfg.Database.Driver))),
		OpenAPI:      api.Handler(),
	}

	d.Router = chi.NewRouter()
	rest.RegisterAllRoutes(d.Router, handlers, rest.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ExposePanics:   cfg.IsDevelopment(),
	}, lg)
	return nil
}

// Close drains in-flight event handlers before releasing the broker and database.
func (d *Dependencies) Close(ctx context.Context) error {
	var errs []error
	if d.EventBus != nil {
		if err := d.EventBus.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("event bus: %w", err))
		}
	}
	if d.Broker != nil {
		if err := d.Broker.Close(); err != nil {
			errs = append(errs, fmt.Errorf("broker: %w", err))
		}
	}
	if d.DB != nil {
		if err := database.Close(d.DB); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}

func sqlxDriverName(driver string) string {
	if driver == internal.DriverSQLite {
		return "sqlite3"
	}
	return "pgx"
}
