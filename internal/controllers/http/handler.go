package http

import (
	"errors"
	"net/http"

	"order-processor/internal/domain"
	"order-processor/internal/logger"
	"order-processor/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service     *services.OrderService
	diagnostics bool
}

// NewHandler builds the order handler. diagnostics enables GET /view-orders,
// which is only meant for the in-memory development store.
func NewHandler(s *services.OrderService, diagnostics bool) *Handler {
	return &Handler{service: s, diagnostics: diagnostics}
}

func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(), RequestLogger(), CORS())
	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(h.MethodNotAllowed)
	r.NoRoute(h.NotFound)

	// OPTIONS is answered by CORS on the NoMethod/NoRoute chains.
	r.POST("/", h.CreateOrder)
	if h.diagnostics {
		r.GET("/view-orders", h.ViewOrders)
	}
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Invalid JSON body",
			Details: []string{"request body must be a JSON object"},
		})
		return
	}

	sub, err := services.ParseSubmission(body)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, ValidationErrorResponse{
				Error:   "Validation failed",
				Details: verr.Details,
			})
			return
		}
		h.internalError(c, err, "failed to save order")
		return
	}

	logger.Info("order received", "email", sub.Email, "quantity", sub.Quantity)

	order, err := h.service.CreateOrder(c.Request.Context(), sub)
	if err != nil {
		h.internalError(c, err, "failed to save order")
		return
	}

	c.JSON(http.StatusCreated, CreateOrderResponse{
		Success: true,
		OrderID: order.OrderID,
		Message: "Order received successfully",
	})
}

func (h *Handler) ViewOrders(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.internalError(c, err, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, ViewOrdersResponse{Total: len(orders), Orders: orders})
}

func (h *Handler) MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}

func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}

// internalError keeps err in the logs; the caller only gets msg.
func (h *Handler) internalError(c *gin.Context, err error, msg string) {
	logger.Error("error processing request", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal Server Error",
		Message: msg,
	})
}
