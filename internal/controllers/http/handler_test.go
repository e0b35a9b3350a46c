package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"order-processor/internal/domain"
	"order-processor/internal/mocks"
	"order-processor/internal/repository"
	"order-processor/internal/repository/memory"
	"order-processor/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(repo repository.OrderRepository, diagnostics bool) *gin.Engine {
	svc := services.NewOrderService(repo, services.NewRandomIDGenerator(), nil)
	return NewRouter(NewHandler(svc, diagnostics))
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

const anaOrder = `{"name":"Ana K","email":"ana@example.com","phone":"+995555000111","address":"1 Main St, Tbilisi","quantity":2}`

func TestCreateOrder_Success(t *testing.T) {
	repo := memory.NewOrderRepository()
	r := newTestRouter(repo, false)

	w := do(r, http.MethodPost, "/", anaOrder)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	resp := decode[CreateOrderResponse](t, w)
	assert.True(t, resp.Success)
	assert.Regexp(t, services.OrderIDPattern, resp.OrderID)
	assert.Equal(t, "Order received successfully", resp.Message)

	orders, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	stored := orders[0]
	assert.Equal(t, resp.OrderID, stored.OrderID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "Ana K", stored.Customer.Name)
	assert.Equal(t, "1 Main St, Tbilisi", stored.Customer.Address)
	assert.Equal(t, 2, stored.Items.Quantity)
	assert.Equal(t, domain.ProductName, stored.Items.Product)
	assert.Equal(t, int64(149), stored.Pricing.PricePerUnit)
	assert.Equal(t, int64(298), stored.Pricing.TotalPrice)
	assert.Equal(t, "USD", stored.Pricing.Currency)
}

func TestCreateOrder_NormalizesEmail(t *testing.T) {
	repo := memory.NewOrderRepository()
	r := newTestRouter(repo, false)

	w := do(r, http.MethodPost, "/", `{"name":"Test User","email":" Test@Example.COM ","phone":"1","address":"x","quantity":3}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	orders, _ := repo.List(t.Context())
	require.Len(t, orders, 1)
	assert.Equal(t, "test@example.com", orders[0].Customer.Email)
	assert.Equal(t, int64(447), orders[0].Pricing.TotalPrice)
}

func TestCreateOrder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		details []string
	}{
		{
			name: "everything invalid",
			body: `{"name":"","email":"bad","phone":"","address":"","quantity":0}`,
			details: []string{
				"name is required",
				"email is invalid",
				"phone is required",
				"address is required",
				"quantity must be at least 1",
			},
		},
		{
			name:    "missing name and invalid email",
			body:    `{"email":"bad","phone":"1","address":"x","quantity":1}`,
			details: []string{"name is required", "email is invalid"},
		},
		{
			name:    "negative quantity",
			body:    `{"name":"a","email":"a@b.co","phone":"1","address":"x","quantity":-1}`,
			details: []string{"quantity must be at least 1"},
		},
		{
			name:    "fractional quantity",
			body:    `{"name":"a","email":"a@b.co","phone":"1","address":"x","quantity":2.5}`,
			details: []string{"quantity must be an integer"},
		},
		{
			name:    "quantity as string",
			body:    `{"name":"a","email":"a@b.co","phone":"1","address":"x","quantity":"2"}`,
			details: []string{"quantity must be a number"},
		},
		{
			name: "null body",
			body: `null`,
			details: []string{
				"name is required",
				"email is required",
				"phone is required",
				"address is required",
				"quantity is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewOrderRepository()
			r := newTestRouter(repo, false)

			w := do(r, http.MethodPost, "/", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			resp := decode[ValidationErrorResponse](t, w)
			assert.Equal(t, "Validation failed", resp.Error)
			assert.Equal(t, tt.details, resp.Details)
			assert.Equal(t, 0, repo.Len())
		})
	}
}

func TestCreateOrder_QuantityOfOneAccepted(t *testing.T) {
	r := newTestRouter(memory.NewOrderRepository(), false)

	w := do(r, http.MethodPost, "/", `{"name":"a","email":"a@b.co","phone":"1","address":"x","quantity":1}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrder_InvalidJSON(t *testing.T) {
	r := newTestRouter(memory.NewOrderRepository(), false)

	for _, body := range []string{"", "{not json", "[1,2]", `"text"`} {
		w := do(r, http.MethodPost, "/", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		resp := decode[ValidationErrorResponse](t, w)
		assert.Equal(t, "Invalid JSON body", resp.Error)
		assert.NotEmpty(t, resp.Details)
	}
}

func TestCreateOrder_RepeatedSubmissionsAreDistinct(t *testing.T) {
	repo := memory.NewOrderRepository()
	r := newTestRouter(repo, false)

	first := decode[CreateOrderResponse](t, do(r, http.MethodPost, "/", anaOrder))
	second := decode[CreateOrderResponse](t, do(r, http.MethodPost, "/", anaOrder))

	assert.NotEmpty(t, first.OrderID)
	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Equal(t, 2, repo.Len())
}

func TestCreateOrder_StoreFailure(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).
		Return(errors.New("dial tcp 10.0.0.5:443: connection refused"))
	r := newTestRouter(mockRepo, false)

	w := do(r, http.MethodPost, "/", anaOrder)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode[ErrorResponse](t, w)
	assert.Equal(t, "Internal Server Error", resp.Error)
	assert.Equal(t, "failed to save order", resp.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	mockRepo.AssertExpectations(t)
}

func TestCreateOrder_PanicRecovered(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("store driver bug")
	})
	r := newTestRouter(mockRepo, false)

	w := do(r, http.MethodPost, "/", anaOrder)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decode[ErrorResponse](t, w).Error)
}

func TestPreflight(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	r := newTestRouter(mockRepo, false)

	for _, path := range []string{"/", "/view-orders", "/anything"} {
		w := do(r, http.MethodOptions, path, anaOrder)

		assert.Equal(t, http.StatusNoContent, w.Code, path)
		assert.Empty(t, w.Body.String(), path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
	}

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPreflight_DiagnosticsRoute(t *testing.T) {
	r := newTestRouter(memory.NewOrderRepository(), true)

	w := do(r, http.MethodOptions, "/view-orders", "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, "POST", w.Header().Get("Access-Control-Allow-Methods"))
}

func TestMethodNotAllowed(t *testing.T) {
	r := newTestRouter(memory.NewOrderRepository(), false)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := do(r, method, "/", "")

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		resp := decode[map[string]any](t, w)
		assert.Equal(t, map[string]any{"error": "Method not allowed"}, resp)
	}
}

func TestViewOrders(t *testing.T) {
	repo := memory.NewOrderRepository()
	r := newTestRouter(repo, true)

	w := do(r, http.MethodGet, "/view-orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	empty := decode[ViewOrdersResponse](t, w)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Orders)

	do(r, http.MethodPost, "/", anaOrder)
	do(r, http.MethodPost, "/", anaOrder)

	w = do(r, http.MethodGet, "/view-orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	resp := decode[ViewOrdersResponse](t, w)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "ana@example.com", resp.Orders[0].Customer.Email)
}

func TestViewOrders_DisabledOutsideDevelopment(t *testing.T) {
	r := newTestRouter(memory.NewOrderRepository(), false)

	w := do(r, http.MethodGet, "/view-orders", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", decode[ErrorResponse](t, w).Error)
}

func TestViewOrders_StoreFailure(t *testing.T) {
	mockRepo := new(mocks.MockOrderRepository)
	mockRepo.On("List", mock.Anything).Return(nil, errors.New("timeout"))
	r := newTestRouter(mockRepo, true)

	w := do(r, http.MethodGet, "/view-orders", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "failed to list orders", decode[ErrorResponse](t, w).Message)
}
