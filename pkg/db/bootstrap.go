package db

import (
	"context"
	"fmt"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// databaseCreator abstracts the two statements EnsureDatabase needs.
type databaseCreator interface {
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateDatabase(ctx context.Context, name string) error
}

// EnsureDatabase creates the configured postgres database when it does not
// exist yet. It is a no-op for sqlite or when the feature is disabled.
func EnsureDatabase(ctx context.Context, cfg config.DBConfig, logg *logger.Logger) error {
	if !cfg.CreateDatabase || cfg.IsSQLite() {
		return nil
	}

	dsn, err := cfg.MaintenanceDSN()
	if err != nil {
		return err
	}

	conn, err := gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), GormConfig())
	if err != nil {
		return fmt.Errorf("opening maintenance connection: %w", err)
	}
	defer func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return ensureDatabase(ctx, pgCreator{conn: conn}, cfg.DatabaseName(), logg)
}

func ensureDatabase(ctx context.Context, creator databaseCreator, name string, logg *logger.Logger) error {
	if name == "" {
		return fmt.Errorf("database name is required")
	}

	exists, err := creator.DatabaseExists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	if err := creator.CreateDatabase(ctx, name); err != nil {
		return fmt.Errorf("creating database %q: %w", name, err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "database", name), "database created")
	}
	return nil
}

type pgCreator struct {
	conn *gorm.DB
}

func (p pgCreator) DatabaseExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := p.conn.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", name).
		Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateDatabase cannot bind the name as a parameter, so it is quoted as an identifier.
func (p pgCreator) CreateDatabase(ctx context.Context, name string) error {
	return p.conn.WithContext(ctx).Exec("CREATE DATABASE " + quoteIdentifier(name)).Error
}

func quoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}
