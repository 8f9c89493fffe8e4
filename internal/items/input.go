package items

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// MaxNameLength mirrors the varchar(255) column.
	MaxNameLength = 255
	// MaxQuantity mirrors the integer column.
	MaxQuantity = math.MaxInt32
	// PriceScale is the number of fraction digits stored for a price.
	PriceScale = 2
)

// MaxPrice is the exclusive upper bound of a numeric(10,2) price.
var MaxPrice = decimal.New(1, 8)

// Input is the parsed, domain-level payload for create and update.
type Input struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Normalize trims the name and rounds the price to the stored scale.
func (in Input) Normalize() Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Price = in.Price.Round(PriceScale)
	return in
}

// Validate checks the item invariants in field order and reports the first violation.
func (in Input) Validate() error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return fieldError("name", "must not be blank")
	case utf8.RuneCountInString(name) > MaxNameLength:
		return fieldError("name", fmt.Sprintf("must be at most %d characters", MaxNameLength))
	case in.Quantity < 0:
		return fieldError("quantity", "must be zero or greater")
	case in.Quantity > MaxQuantity:
		return fieldError("quantity", fmt.Sprintf("must be at most %d", MaxQuantity))
	case in.Price.IsNegative():
		return fieldError("price", "must be zero or greater")
	case in.Price.Round(PriceScale).GreaterThanOrEqual(MaxPrice):
		return fieldError("price", "must be less than "+MaxPrice.String())
	}
	return nil
}

func fieldError(field, reason string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, field+" "+reason).
		WithDetails(map[string]string{field: reason})
}
