package http

import "order-processor/internal/domain"

type CreateOrderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type ViewOrdersResponse struct {
	Total  int            `json:"total"`
	Orders []domain.Order `json:"orders"`
}
