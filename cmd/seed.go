package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/hrtool/internal/auth"
	"github.com/frahmantamala/hrtool/internal/bootstrap"
	companylinkPostgres "github.com/frahmantamala/hrtool/internal/companylink/postgres"
	"github.com/frahmantamala/hrtool/internal/database"
	notificationPostgres "github.com/frahmantamala/hrtool/internal/notification/postgres"
	userPostgres "github.com/frahmantamala/hrtool/internal/user/postgres"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/spf13/cobra"
)

var seedTestData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the admin account and optional test data",
	Long:  `Create the administrator from HRTOOL_ADMIN_PASSWORD and, with --test-data, synthetic users, notifications and links.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		lg := logger.L()

		db, err := database.Open(ctx, cfg.Database, lg)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer func() { _ = database.Close(db) }()

		seeder := bootstrap.NewSeeder(
			userPostgres.NewUserRepository(db),
			notificationPostgres.NewNotificationRepository(db),
			companylinkPostgres.NewCompanyLinkRepository(db),
			database.NewUnitOfWork(db),
			auth.NewBcryptHasher(cfg.Security.BCryptCost),
			lg,
		)

		if err := seeder.SeedAdmin(ctx, cfg.Bootstrap); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		if seedTestData || cfg.Bootstrap.SeedTestData {
			if err := seeder.SeedTestData(ctx, cfg.Bootstrap); err != nil {
				log.Fatalf("failed to seed test data: %v", err)
			}
		}
		lg.Info("seeding complete")
	},
}

func init() {
	seedCmd.Flags().BoolVar(&seedTestData, "test-data", false, "also create synthetic users, notifications and links")
}
