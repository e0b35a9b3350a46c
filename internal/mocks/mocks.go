package mocks

import (
	"context"

	"order-processor/internal/domain"
	"order-processor/internal/infra"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockIDGenerator struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockOrderClient struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockIDGenerator) Next() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockOrderClient) SubmitOrder(ctx context.Context, req infra.OrderRequest) (*infra.OrderResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.OrderResponse), args.Error(1)
}

func (m *MockOrderClient) ListOrders(ctx context.Context) (*infra.OrdersView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infra.OrdersView), args.Error(1)
}
