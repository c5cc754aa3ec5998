package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/services/mocks"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrder(t *testing.T) {
	t.Run("Success - Order found", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		order := &models.Order{ID: "ord-1", UserID: "user-1", Status: models.OrderStatusShipped}
		orderService.On("GetOrder", mock.Anything, testSessionID, "ord-1").Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/ord-1", nil, testSessionID,
			map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.Order
		decodeEnvelope(t, rr, &got)
		assert.Equal(t, models.OrderStatusShipped, got.Status)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/orders/ord-1", nil, testSessionID,
			map[string]string{"id": "ord-1"})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		orderService.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		orderService.On("GetOrder", mock.Anything, testSessionID, "missing").
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/missing", nil, testSessionID,
			map[string]string{"id": "missing"})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListOrders(t *testing.T) {
	t.Run("Success - Page and limit forwarded", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		history := &models.OrderHistoryResponse{
			Orders:     []models.Order{{ID: "ord-1"}, {ID: "ord-2"}},
			Pagination: models.Pagination{Page: 2, Limit: 2, Total: 6, TotalPages: 3, HasNext: true, HasPrev: true},
		}
		orderService.On("ListOrders", mock.Anything, testSessionID, 2, 2).Return(history, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=2&limit=2", nil, testSessionID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.OrderHistoryResponse
		decodeEnvelope(t, rr, &got)
		require.Len(t, got.Orders, 2)
		assert.True(t, got.Pagination.HasNext)
	})

	t.Run("Success - Defaults left to the service", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		orderService.On("ListOrders", mock.Anything, testSessionID, 0, 0).
			Return(&models.OrderHistoryResponse{Orders: []models.Order{}}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders", nil, testSessionID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Negative page", func(t *testing.T) {
		// Arrange
		orderService := mocks.NewOrderService(t)
		handler := handlers.NewOrderHandler(orderService)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=-1", nil, testSessionID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "page")
	})
}
