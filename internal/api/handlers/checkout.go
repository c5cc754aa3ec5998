package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, validator: validator.New()}
}

// GetState godoc
//
//	@Summary	Current checkout step and saved form
//	@Tags		Checkout
//	@Produce	json
//	@Success	200	{object}	models.CheckoutState
//	@Failure	401	{object}	response.ErrorResponse
//	@Router		/checkout [get]
func (h *CheckoutHandler) GetState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		state, err := h.checkoutService.GetState(r.Context(), sessionID)
		if err != nil {
			logger.Error("Failed to load checkout", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

// SetAddress godoc
//
//	@Summary	Save contact and shipping details
//	@Tags		Checkout
//	@Accept		json
//	@Produce	json
//	@Param		form	body		models.ShippingForm	true	"Contact and addresses"
//	@Success	200		{object}	models.CheckoutState
//	@Failure	422		{object}	response.ErrorResponse
//	@Router		/checkout/address [put]
func (h *CheckoutHandler) SetAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var form models.ShippingForm
		if err := utils.DecodeJSONBody(r, &form); err != nil {
			logger.Warn("Invalid shipping form body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		// field rules are checked by the service so the categorized error carries every message
		state, err := h.checkoutService.SetAddress(r.Context(), sessionID, &form)
		if err != nil {
			logger.Warn("Shipping form rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, state)
	}
}

func (h *CheckoutHandler) Advance() http.HandlerFunc {
	return h.transition("advance", h.checkoutService.Advance)
}

func (h *CheckoutHandler) Back() http.HandlerFunc {
	return h.transition("back", h.checkoutService.Back)
}

func (h *CheckoutHandler) transition(name string, move func(ctx context.Context, sessionID string) (*models.CheckoutState, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context()).With(slog.String("transition", name))

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		state, err := move(r.Context(), sessionID)
		if err != nil {
			logger.Warn("Checkout transition refused", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Checkout step changed", slog.String("step", string(state.Step)))
		response.Success(w, http.StatusOK, state)
	}
}

// Submit godoc
//
//	@Summary	Pay and place the order
//	@Tags		Checkout
//	@Accept		json
//	@Produce	json
//	@Param		payment	body		models.SubmitPaymentRequest	true	"Tokenized payment method"
//	@Success	201		{object}	models.CheckoutResult
//	@Failure	402		{object}	response.ErrorResponse	"Payment declined"
//	@Failure	409		{object}	response.ErrorResponse	"Order could not be placed"
//	@Failure	422		{object}	response.ErrorResponse	"Cart or form invalid"
//	@Failure	503		{object}	response.ErrorResponse	"Network problem, safe to retry"
//	@Router		/checkout/submit [post]
func (h *CheckoutHandler) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sessionID, ok := sessionIDOrError(w, r, logger)
		if !ok {
			return
		}

		var req models.SubmitPaymentRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			logger.Warn("Invalid payment body", slog.String("error", err.Error()))
			response.Error(w, errors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		result, err := h.checkoutService.Submit(r.Context(), sessionID, &req)
		if err != nil {
			logger.Warn("Checkout failed", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("orderId", result.Order.ID))
		response.Success(w, http.StatusCreated, result)
	}
}
