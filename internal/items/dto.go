package items

import (
	"encoding/json"
	"time"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// ItemDTO is the public representation of an inventory item.
type ItemDTO struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// SummaryDTO aggregates the inventory totals.
type SummaryDTO struct {
	TotalItems    int64       `json:"total_items"`
	TotalQuantity int64       `json:"total_quantity"`
	TotalValue    json.Number `json:"total_value"`
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:        m.ID,
		Name:      m.Name,
		Quantity:  m.Quantity,
		Price:     money(m.Price),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

// FromModels maps a slice of items, never returning nil.
func FromModels(rows []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(PriceScale))
}
