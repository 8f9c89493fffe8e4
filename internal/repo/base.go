package repo

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"gorm.io/gorm"
)

// ErrNotFound is the root of every repository not-found sentinel.
var ErrNotFound = errors.New("record not found")

// Base provides a shared foundation for domain repositories.
type Base struct {
	db      *gorm.DB
	metrics *metrics.StoreMetrics
}

// NewBase constructs a Base repository backed by the provided GORM connection.
// A nil metrics value disables operation counting.
func NewBase(db *gorm.DB, m *metrics.StoreMetrics) Base {
	return Base{db: db, metrics: m}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Now reads the connection's clock, the same one GORM uses for autoCreateTime.
func (b Base) Now() time.Time {
	if b.db == nil || b.db.Config == nil || b.db.NowFunc == nil {
		return time.Now()
	}
	return b.db.NowFunc()
}

// Observe records the outcome of op and returns err unchanged.
func (b Base) Observe(op string, err error) error {
	switch {
	case err == nil:
		b.metrics.Inc(op, metrics.OutcomeOK)
	case errors.Is(err, ErrNotFound):
		b.metrics.Inc(op, metrics.OutcomeNotFound)
	default:
		b.metrics.Inc(op, metrics.OutcomeError)
	}
	return err
}
