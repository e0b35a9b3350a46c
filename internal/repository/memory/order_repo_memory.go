package memory

import (
	"context"
	"sync"

	"order-processor/internal/domain"
	"order-processor/internal/repository"
)

// OrderRepository is the local development store. Orders live only as long
// as the value does and are not shared between processes.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []domain.Order
	byID   map[string]int
}

var _ repository.OrderRepository = (*OrderRepository)(nil)

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{byID: make(map[string]int)}
}

func (r *OrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[order.OrderID]; ok {
		return repository.ErrOrderExists
	}
	r.byID[order.OrderID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}

// List returns a copy in insertion order.
func (r *OrderRepository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}

func (r *OrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
