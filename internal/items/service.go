package items

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/inventory-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/inventory-backend/pkg/errors"
)

type itemStore interface {
	ListAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Insert(ctx context.Context, input Input) (*models.Item, error)
	UpdateByID(ctx context.Context, id int64, input Input) (*models.Item, error)
	DeleteByID(ctx context.Context, id int64) error
	Totals(ctx context.Context) (*Totals, error)
}

// Service exposes inventory item operations.
type Service interface {
	List(ctx context.Context) ([]ItemDTO, error)
	Get(ctx context.Context, id int64) (*ItemDTO, error)
	Create(ctx context.Context, input Input) (*ItemDTO, error)
	Update(ctx context.Context, id int64, input Input) (*ItemDTO, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*SummaryDTO, error)
}

type service struct {
	store itemStore
}

// NewService builds an item service on top of the provided store.
func NewService(store itemStore) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("item store required")
	}
	return &service{store: store}, nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, storeError(err, "list items")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (*ItemDTO, error) {
	item, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get item")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input Input) (*ItemDTO, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	item, err := s.store.Insert(ctx, input)
	if err != nil {
		return nil, storeError(err, "insert item")
	}
	return FromModel(item), nil
}

func (s *service) Update(ctx context.Context, id int64, input Input) (*ItemDTO, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	item, err := s.store.UpdateByID(ctx, id, input)
	if err != nil {
		return nil, storeError(err, "update item")
	}
	return FromModel(item), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return storeError(err, "delete item")
	}
	return nil
}

func (s *service) Summary(ctx context.Context) (*SummaryDTO, error) {
	totals, err := s.store.Totals(ctx)
	if err != nil {
		return nil, storeError(err, "summarize items")
	}
	return &SummaryDTO{
		TotalItems:    totals.TotalItems,
		TotalQuantity: totals.TotalQuantity,
		TotalValue:    money(totals.TotalValue.Round(PriceScale)),
	}, nil
}

func storeError(err error, op string) error {
	if errors.Is(err, ErrItemNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, op)
}
