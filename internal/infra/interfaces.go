package infra

import "context"

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

type OrderClientInterface interface {
	SubmitOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
	ListOrders(ctx context.Context) (*OrdersView, error)
}

var _ OrderClientInterface = (*OrderClient)(nil)

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, any) error { return nil }

var _ EventPublisher = NopPublisher{}
