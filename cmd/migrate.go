package cmd

import (
	"context"
	"log"

	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/frahmantamala/hrtool/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files embedded from db/migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.L()

	db, err := database.Open(ctx, cfg.Database, lg)
	if err != nil {
		log.Fatalf("migrate: failed to open DB: %v\n", err)
	}
	defer func() { _ = database.Close(db) }()

	if migrateRollback {
		return database.Rollback(ctx, db, cfg.Database.Driver, lg)
	}
	return database.Migrate(ctx, db, cfg.Database.Driver, lg)
}
