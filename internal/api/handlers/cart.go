package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//
//	@Summary	Get the session cart
//	@Tags		Cart
//	@Produce	json
//	@Success	200	{object}	models.Cart
//	@Router		/cart [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to get cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//
//	@Summary	Add a product line to the cart
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.AddItemRequest	true	"Product, variant and quantity"
//	@Success	200		{object}	models.Cart
//	@Failure	400		{object}	response.ErrorResponse
//	@Failure	404		{object}	response.ErrorResponse
//	@Router		/cart/items [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid add to cart input")
			return
		}

		logger = logger.With(slog.String("productId", req.ProductID))

		cart, err := h.cartService.AddToCart(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to add item to cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart", slog.Int("quantity", req.Quantity), slog.Int("itemCount", cart.ItemCount))
		response.Success(w, http.StatusOK, cart)
	}
}

// UpdateItem godoc
//
//	@Summary	Set the quantity of a cart line; zero removes it
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.UpdateQuantityRequest	true	"Line and new quantity"
//	@Success	200		{object}	models.Cart
//	@Router		/cart/items [put]
func (h *CartHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart update input")
			return
		}

		cart, err := h.cartService.UpdateItemQuantity(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Failed to update cart item",
				slog.String("productId", req.ProductID),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// RemoveItem godoc
//
//	@Summary	Remove a line from the cart
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		item	body		models.RemoveItemRequest	true	"Line to remove"
//	@Success	200		{object}	models.Cart
//	@Router		/cart/items [delete]
func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.RemoveItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart removal input")
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), sessionID, &req)
		if err != nil {
			logger.Error("Failed to remove cart item", slog.String("productId", req.ProductID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// ClearCart godoc
//
//	@Summary	Empty the cart
//	@Tags		Cart
//	@Success	204
//	@Router		/cart [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), sessionID); err != nil {
			logger.Error("Failed to clear cart", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// ApplyPromo godoc
//
//	@Summary	Apply a promo code
//	@Tags		Cart
//	@Accept		json
//	@Produce	json
//	@Param		promo	body		models.ApplyPromoRequest	true	"Promo code"
//	@Success	200		{object}	models.Cart
//	@Failure	400		{object}	response.ErrorResponse
//	@Router		/cart/promo [post]
func (h *CartHandler) ApplyPromo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.ApplyPromoRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid promo code input")
			return
		}

		cart, err := h.cartService.ApplyPromoCode(r.Context(), sessionID, req.Code)
		if err != nil {
			logger.Warn("Promo code rejected", slog.String("code", req.Code), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Promo code applied", slog.String("code", cart.PromoCode))
		response.Success(w, http.StatusOK, cart)
	}
}

func (h *CartHandler) RemovePromo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		cart, err := h.cartService.RemovePromoCode(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to remove promo code", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
