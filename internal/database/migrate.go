package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hrtool/db"
	"github.com/frahmantamala/hrtool/internal"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

type gooseLogger struct {
	lg *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.lg.Debug(fmt.Sprintf(format, v...), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.lg.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case internal.DriverPostgres:
		return "postgres", nil
	case internal.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func prepareGoose(driver string, lg *slog.Logger) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}
	if lg == nil {
		lg = slog.Default()
	}
	goose.SetBaseFS(db.Migrations)
	goose.SetTableName(migrationsTable)
	goose.SetLogger(gooseLogger{lg: lg})
	return goose.SetDialect(dialect)
}

// Migrate applies every embedded migration that has not run yet.
func Migrate(ctx context.Context, gdb *gorm.DB, driver string, lg *slog.Logger) error {
	if err := prepareGoose(driver, lg); err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Rollback reverts the latest applied migration.
func Rollback(ctx context.Context, gdb *gorm.DB, driver string, lg *slog.Logger) error {
	if err := prepareGoose(driver, lg); err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := goose.DownContext(ctx, sqlDB, db.MigrationsDir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}
