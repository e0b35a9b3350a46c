package repository

import (
	"context"
	"errors"

	"order-processor/internal/domain"
)

var (
	ErrOrderExists   = errors.New("order already exists")
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository persists orders. Create never overwrites: an existing
// order id is reported as ErrOrderExists.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}
