package items

import (
	"context"
	"fmt"

	"github.com/angelmondragon/inventory-backend/internal/repo"
	"github.com/angelmondragon/inventory-backend/pkg/db"
	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/angelmondragon/inventory-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrItemNotFound is returned when no row matches the requested id.
var ErrItemNotFound = fmt.Errorf("item %w", repo.ErrNotFound)

// Totals holds the aggregate figures across every item.
type Totals struct {
	TotalItems    int64
	TotalQuantity int64
	TotalValue    decimal.Decimal
}

// Repository handles item persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to item operations.
func NewRepository(conn *gorm.DB, m *metrics.StoreMetrics) *Repository {
	return &Repository{Base: repo.NewBase(conn, m)}
}

// ListAll returns every item, newest id first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Item, error) {
	rows := make([]models.Item, 0)
	err := r.DB(ctx).Order("id DESC").Find(&rows).Error
	if err != nil {
		return nil, r.Observe("list", err)
	}
	r.Observe("list", nil)
	return rows, nil
}

// GetByID loads a single item.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := r.first(ctx, id)
	return item, r.Observe("get", err)
}

// Insert persists a new item; both timestamps come from one clock read.
func (r *Repository) Insert(ctx context.Context, input Input) (*models.Item, error) {
	now := r.Now()
	item := &models.Item{
		Name:      input.Name,
		Quantity:  input.Quantity,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.DB(ctx).Create(item).Error; err != nil {
		return nil, r.Observe("insert", err)
	}
	r.Observe("insert", nil)
	return item, nil
}

// UpdateByID replaces the mutable fields and refreshes updated_at.
func (r *Repository) UpdateByID(ctx context.Context, id int64, input Input) (*models.Item, error) {
	res := r.DB(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":       input.Name,
			"quantity":   input.Quantity,
			"price":      input.Price,
			"updated_at": r.Now(),
		})
	if res.Error != nil {
		return nil, r.Observe("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, r.Observe("update", ErrItemNotFound)
	}

	item, err := r.first(ctx, id)
	return item, r.Observe("update", err)
}

// DeleteByID removes the row permanently.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	res := r.DB(ctx).Where("id = ?", id).Delete(&models.Item{})
	if res.Error != nil {
		return r.Observe("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return r.Observe("delete", ErrItemNotFound)
	}
	return r.Observe("delete", nil)
}

// Totals aggregates count, quantity and stock value.
func (r *Repository) Totals(ctx context.Context) (*Totals, error) {
	var row totalsRow
	err := r.DB(ctx).
		Model(&models.Item{}).
		Select("COUNT(*) AS total_items, COALESCE(SUM(quantity), 0) AS total_quantity, SUM(quantity * price) AS total_value").
		Scan(&row).Error
	if err != nil {
		return nil, r.Observe("summary", err)
	}
	r.Observe("summary", nil)

	totals := &Totals{TotalItems: row.TotalItems, TotalQuantity: row.TotalQuantity, TotalValue: decimal.Zero}
	if row.TotalValue.Valid {
		totals.TotalValue = row.TotalValue.Decimal
	}
	return totals, nil
}

type totalsRow struct {
	TotalItems    int64
	TotalQuantity int64
	TotalValue    decimal.NullDecimal
}

func (r *Repository) first(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.DB(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}
