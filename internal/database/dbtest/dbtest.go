// Package dbtest opens migrated in-memory SQLite databases for tests.
package dbtest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Open returns a fresh schema per call. The shared-cache name keeps the
// database alive across pooled connections, and one connection keeps
// SQLite writers from tripping over each other.
func Open(ctx context.Context) (*gorm.DB, error) {
	cfg := internal.DatabaseConfig{
		Driver:       internal.DriverSQLite,
		Source:       fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(ctx, cfg, lg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, cfg.Driver, lg); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
