package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/config"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type checkedRow struct {
	ID  int
	Qty int `gorm:"check:qty >= 0"`
}

func newSQLiteClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "client.db"),
		MaxOpenConns: 2,
	}, nil)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewSQLiteAndPing(t *testing.T) {
	client := newSQLiteClient(t)

	if client.Driver() != config.DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", client.Driver())
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if got := sqlDB.Stats().MaxOpenConnections; got != 2 {
		t.Fatalf("expected pool size 2, got %d", got)
	}
}

func TestNewRequiresDSN(t *testing.T) {
	if _, err := New(context.Background(), config.DBConfig{}, nil); err == nil {
		t.Fatal("expected error without dsn")
	}
}

func TestPingFailsAfterClose(t *testing.T) {
	client := newSQLiteClient(t)
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if err := client.Ping(context.Background()); err == nil {
		t.Fatal("expected ping to fail on a closed pool")
	}
}

func TestNowIsUTCMicroseconds(t *testing.T) {
	now := Now()
	if now.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", now.Location())
	}
	if now.Nanosecond()%int(time.Microsecond) != 0 {
		t.Fatalf("expected microsecond precision, got %d ns", now.Nanosecond())
	}
}

func TestErrorHelpers(t *testing.T) {
	client := newSQLiteClient(t)
	conn := client.DB()
	if err := conn.AutoMigrate(&checkedRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	var missing checkedRow
	err := conn.First(&missing, 99).Error
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}

	err = conn.Create(&checkedRow{Qty: -1}).Error
	if !IsCheckViolation(err) {
		t.Fatalf("expected check violation, got %v", err)
	}

	if !IsCheckViolation(&pgconn.PgError{Code: "23514"}) {
		t.Fatal("expected postgres check violation to be detected")
	}
	if IsCheckViolation(errors.New("boom")) || IsCheckViolation(nil) {
		t.Fatal("unexpected check violation match")
	}
	if IsNotFound(gorm.ErrInvalidDB) {
		t.Fatal("unexpected not found match")
	}
}
