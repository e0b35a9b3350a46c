package domain

import "time"

const EventOrderCreated = "order.created"

type OrderCreatedEvent struct {
	OrderID    string    `json:"orderId"`
	Quantity   int       `json:"quantity"`
	TotalPrice int64     `json:"totalPrice"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewOrderCreatedEvent(o *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:    o.OrderID,
		Quantity:   o.Items.Quantity,
		TotalPrice: o.Pricing.TotalPrice,
		Currency:   o.Pricing.Currency,
		CreatedAt:  o.CreatedAt,
	}
}
