package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-processor/internal/domain"
	"order-processor/internal/infra"
	"order-processor/internal/logger"
	"order-processor/internal/repository"
)

const maxCreateAttempts = 3

var ErrIDCollision = errors.New("could not allocate a unique order id")

type OrderService struct {
	repo      repository.OrderRepository
	ids       IDGenerator
	publisher infra.EventPublisher
	now       func() time.Time
}

func NewOrderService(r repository.OrderRepository, ids IDGenerator, pub infra.EventPublisher) *OrderService {
	if pub == nil {
		pub = infra.NopPublisher{}
	}
	return &OrderService{
		repo:      r,
		ids:       ids,
		publisher: pub,
		now:       time.Now,
	}
}

// CreateOrder persists a new order for a validated submission. An id that
// already exists in the store is never overwritten: a fresh id is drawn
// and the create is retried.
func (u *OrderService) CreateOrder(ctx context.Context, sub Submission) (*domain.Order, error) {
	customer := domain.Customer{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Address: sub.Address,
	}
	createdAt := u.now()

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		order := domain.NewOrder(u.ids.Next(), customer, sub.Quantity, createdAt)

		err := u.repo.Create(ctx, order)
		if err == nil {
			logger.Info("order saved", "orderId", order.OrderID, "quantity", order.Items.Quantity, "totalPrice", order.Pricing.TotalPrice)
			u.publishOrderCreatedEvent(ctx, order)
			return order, nil
		}
		if !errors.Is(err, repository.ErrOrderExists) {
			return nil, fmt.Errorf("save order %s: %w", order.OrderID, err)
		}
		logger.Warn("order id already taken, regenerating", "orderId", order.OrderID, "attempt", attempt)
	}
	return nil, ErrIDCollision
}

func (u *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return u.repo.List(ctx)
}

func (u *OrderService) publishOrderCreatedEvent(ctx context.Context, order *domain.Order) {
	evt := domain.NewOrderCreatedEvent(order)
	if err := u.publisher.Publish(ctx, domain.EventOrderCreated, evt); err != nil {
		logger.Warn("failed to publish order event", "orderId", order.OrderID, "err", err)
	}
}
