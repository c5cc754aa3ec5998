package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetOrder godoc
//
//	@Summary		Get an order by ID
//	@Description	Fetches the order from the backend so the status is current. Requires authentication.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID"
//	@Success		200	{object}	models.Order			"Successfully retrieved order"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.SessionFromContext(r.Context()); !ok {
			logger.Warn("Unauthorized order access attempt: missing session")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		orderID := r.PathValue("id")
		if orderID == "" {
			response.Error(w, errors.BadRequestError("Order id is required"))
			return
		}

		logger = logger.With(slog.String("orderId", orderID))

		order, err := h.orderService.GetOrder(r.Context(), sessionID, orderID)
		if err != nil {
			logger.Error("Failed to get order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary	List the signed-in user's orders
//	@Tags		Orders
//	@Produce	json
//	@Param		page	query		int	false	"Page number"	default(1)
//	@Param		limit	query		int	false	"Orders per page"	default(10)
//	@Success	200		{object}	models.OrderHistoryResponse
//	@Failure	401		{object}	response.ErrorResponse
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		if _, ok := middleware.SessionFromContext(r.Context()); !ok {
			logger.Warn("Unauthorized order list attempt: missing session")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())

		q := r.URL.Query()

		page, err := queryInt(q, "page")
		if err != nil {
			response.Error(w, err)
			return
		}

		limit, err := queryInt(q, "limit")
		if err != nil {
			response.Error(w, err)
			return
		}

		history, err := h.orderService.ListOrders(r.Context(), sessionID, page, limit)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Orders listed", slog.Int("count", len(history.Orders)))
		response.Success(w, http.StatusOK, history)
	}
}
