package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var embedded embed.FS

// Migrations returns the embedded goose files for driver.
func Migrations(driver string) (fs.FS, error) {
	if _, err := DialectFor(driver); err != nil {
		return nil, err
	}
	sub, err := fs.Sub(embedded, "migrations/"+driver)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations for %s: %w", driver, err)
	}
	return sub, nil
}

// EnsureSchema applies the embedded migrations for driver. Every statement is
// create-if-absent, so running it on each start is safe.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string, logg *logger.Logger) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}

	dialect, err := DialectFor(driver)
	if err != nil {
		return err
	}
	fsys, err := Migrations(driver)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{"driver": driver, "applied": len(results)})
		logg.Info(ctx, "schema ready")
	}
	return nil
}
