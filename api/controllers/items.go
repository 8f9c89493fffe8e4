package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/angelmondragon/inventory-backend/api/responses"
	"github.com/angelmondragon/inventory-backend/api/validators"
	"github.com/angelmondragon/inventory-backend/internal/items"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
	"github.com/angelmondragon/inventory-backend/pkg/logger"
)

// itemRequest is the raw create/update payload. Fields stay loosely typed
// until validation so missing, null and mistyped values are told apart.
type itemRequest struct {
	Name     *string         `json:"name" validate:"required,notblank,trimmax=255"`
	Quantity json.RawMessage `json:"quantity" validate:"json_present,json_number,json_integer,json_nonnegative,json_lte=2147483647"`
	Price    json.RawMessage `json:"price" validate:"json_present,json_number,json_nonnegative,json_lt=100000000"`
}

func (r itemRequest) toInput() (items.Input, error) {
	quantity, ok := validators.ParseNumber(r.Quantity)
	if !ok {
		return items.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a number")
	}
	price, ok := validators.ParseNumber(r.Price)
	if !ok {
		return items.Input{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be a number")
	}
	return items.Input{
		Name:     validators.SanitizeString(*r.Name, items.MaxNameLength),
		Quantity: int(quantity.IntPart()),
		Price:    price.Round(items.PriceScale),
	}, nil
}

func decodeItem(r *http.Request) (items.Input, error) {
	var body itemRequest
	if err := validators.DecodeJSONBody(r, &body); err != nil {
		return items.Input{}, err
	}
	return body.toInput()
}

func serviceUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable")
}

// ItemsList returns every item, newest first.
func ItemsList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ItemsSummary returns count, quantity and value totals.
func ItemsSummary(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		summary, err := svc.Summary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// ItemGet returns a single item by id.
func ItemGet(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		item, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// ItemCreate validates the payload and persists a new item.
func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		input, err := decodeItem(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithItemID(r.Context(), item.ID), "item.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ItemUpdate replaces name, quantity and price of an existing item.
func ItemUpdate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		input, err := decodeItem(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.Update(ctx, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "item.updated")
		}
		responses.WriteSuccess(w, item)
	}
}

// ItemDelete removes an item and acknowledges with an empty 200.
func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, serviceUnavailable())
			return
		}

		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, id)
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "item.deleted")
		}
		responses.WriteEmpty(w, http.StatusOK)
	}
}
