package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/metrics"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
	"github.com/aaravmahajanofficial/pawsome-storefront/pkg/stripe"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	stripeAPI "github.com/stripe/stripe-go/v81"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type CheckoutService interface {
	GetState(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	SetAddress(ctx context.Context, sessionID string, form *models.ShippingForm) (*models.CheckoutState, error)
	Advance(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	Back(ctx context.Context, sessionID string) (*models.CheckoutState, error)
	Submit(ctx context.Context, sessionID string, req *models.SubmitPaymentRequest) (*models.CheckoutResult, error)
}

type checkoutService struct {
	carts    CartService
	products ProductService
	sessions SessionProvider
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	provider stripe.Client
	store    repository.SessionStore
	cfg      *config.Checkout
	currency string
	validate *validator.Validate
	strict   *bluemonday.Policy
	tracer   trace.Tracer
	now      func() time.Time
}

func NewCheckoutService(
	carts CartService,
	products ProductService,
	sessions SessionProvider,
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	provider stripe.Client,
	store repository.SessionStore,
	cfg *config.Checkout,
	currency string,
) CheckoutService {
	return &checkoutService{
		carts:    carts,
		products: products,
		sessions: sessions,
		payments: payments,
		orders:   orders,
		provider: provider,
		store:    store,
		cfg:      cfg,
		currency: currency,
		validate: validator.New(),
		strict:   bluemonday.StrictPolicy(),
		tracer:   otel.Tracer("github.com/aaravmahajanofficial/pawsome-storefront/checkout"),
		now:      time.Now,
	}
}

func (s *checkoutService) loadState(ctx context.Context, sessionID string) (*models.CheckoutState, error) {

	state := &models.CheckoutState{}
	found, err := repository.GetJSON(ctx, s.store, sessionID, repository.KeyCheckout, state)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Discarding unreadable checkout state", slog.String("error", err.Error()))
		found = false
	}

	if !found || state.Step == "" {
		state = &models.CheckoutState{Step: models.StepCartReview}
	}

	return state, nil
}

// restartAfterComplete starts a new checkout once the previous one placed its order.
func restartAfterComplete(state *models.CheckoutState) *models.CheckoutState {
	if state.Step != models.StepComplete {
		return state
	}

	return &models.CheckoutState{Step: models.StepCartReview}
}

func (s *checkoutService) saveState(ctx context.Context, sessionID string, state *models.CheckoutState) error {

	state.UpdatedAt = s.now().UTC()

	if err := repository.SetJSON(ctx, s.store, sessionID, repository.KeyCheckout, state); err != nil {
		return errors.StorageError("Failed to save checkout progress").WithError(err)
	}

	return nil
}

// fail classifies err, records it against the stage and returns it.
func (s *checkoutService) fail(ctx context.Context, stage string, err error) error {

	ufe := errors.Classify(err)

	metrics.ObserveCheckout(stage, string(ufe.Category))

	middleware.LoggerFromContext(ctx).Warn("Checkout step failed",
		slog.String("stage", stage),
		slog.String("category", string(ufe.Category)),
		slog.Bool("retryable", ufe.Retryable),
		slog.String("error", err.Error()),
	)

	return ufe
}

func (s *checkoutService) GetState(ctx context.Context, sessionID string) (*models.CheckoutState, error) {

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	if state.Step == models.StepCartReview || state.Step == models.StepComplete {
		return state, nil
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	// a cart emptied elsewhere sends checkout back to the start
	if cart.IsEmpty() && !state.PaymentConfirmed {
		state = &models.CheckoutState{Step: models.StepCartReview, Form: state.Form}
		if err := s.saveState(ctx, sessionID, state); err != nil {
			return nil, s.fail(ctx, stageStep, err)
		}
	}

	return state, nil
}

func (s *checkoutService) SetAddress(ctx context.Context, sessionID string, form *models.ShippingForm) (*models.CheckoutState, error) {

	if _, err := s.sessions.RequireSession(ctx, sessionID); err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	s.sanitizeForm(form)

	if err := s.validateForm(form); err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	state = restartAfterComplete(state)
	state.Form = form

	if err := s.saveState(ctx, sessionID, state); err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	return state, nil
}

func (s *checkoutService) sanitizeForm(form *models.ShippingForm) {

	clean := func(v string) string {
		return strings.TrimSpace(s.strict.Sanitize(v))
	}

	cleanAddress := func(a *models.Address) {
		a.FullName = clean(a.FullName)
		a.Street = clean(a.Street)
		a.Apartment = clean(a.Apartment)
		a.City = clean(a.City)
		a.State = clean(a.State)
		a.PostalCode = clean(a.PostalCode)
		a.Country = strings.ToUpper(clean(a.Country))
	}

	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Phone = strings.TrimSpace(form.Phone)
	cleanAddress(&form.ShippingAddress)

	if form.BillingSame {
		form.BillingAddress = nil
	} else if form.BillingAddress != nil {
		cleanAddress(form.BillingAddress)
	}
}

func (s *checkoutService) validateForm(form *models.ShippingForm) error {

	if form == nil {
		return errors.ValidationError("Enter your shipping details to continue")
	}

	check := func(v any) error {
		err := s.validate.Struct(v)
		if err == nil {
			return nil
		}

		var ve validator.ValidationErrors
		if stdErrors.As(err, &ve) {
			return errors.ValidationError("Please complete all required address fields").
				WithDetail(strings.Join(response.ValidationMessages(ve), "; ")).
				WithError(err)
		}

		return errors.InternalError("Failed to validate address").WithError(err)
	}

	if err := check(form); err != nil {
		return err
	}
	if err := check(&form.ShippingAddress); err != nil {
		return err
	}

	if !form.BillingSame {
		if form.BillingAddress == nil {
			return errors.AddValidationError("billing_address", "is required unless billing matches shipping")
		}
		if err := check(form.BillingAddress); err != nil {
			return err
		}
	}

	return nil
}

// Advance moves to the next step when the current step's predicate holds.
func (s *checkoutService) Advance(ctx context.Context, sessionID string) (*models.CheckoutState, error) {

	session, err := s.sessions.RequireSession(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	state = restartAfterComplete(state)

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	switch state.Step {
	case models.StepCartReview:
		if cart.IsEmpty() {
			return nil, s.fail(ctx, stageStep, errors.ValidationError("Your cart is empty"))
		}
		state.Step = models.StepShipping

	case models.StepShipping:
		if cart.IsEmpty() {
			return nil, s.fail(ctx, stageStep, errors.ValidationError("Your cart is empty"))
		}
		if err := s.validateForm(state.Form); err != nil {
			return nil, s.fail(ctx, stageStep, err)
		}
		if err := s.ensurePaymentIntent(ctx, session, cart, state); err != nil {
			return nil, s.fail(ctx, stageIntent, err)
		}
		state.Step = models.StepPayment

	case models.StepPayment:
		return nil, s.fail(ctx, stageStep, errors.ValidationError("Submit your payment to complete checkout"))

	default:
		return nil, s.fail(ctx, stageStep, errors.ValidationError("Unknown checkout step"))
	}

	if err := s.saveState(ctx, sessionID, state); err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	return state, nil
}

func (s *checkoutService) Back(ctx context.Context, sessionID string) (*models.CheckoutState, error) {

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	switch state.Step {
	case models.StepPayment:
		state.Step = models.StepShipping
	case models.StepShipping:
		state.Step = models.StepCartReview
	default:
		return state, nil
	}

	if err := s.saveState(ctx, sessionID, state); err != nil {
		return nil, s.fail(ctx, stageStep, err)
	}

	return state, nil
}

// ensurePaymentIntent reuses the stored intent while the amount is unchanged
// and asks the backend for a new one otherwise. A confirmed intent is never
// replaced.
func (s *checkoutService) ensurePaymentIntent(ctx context.Context, session *models.Session, cart *models.Cart, state *models.CheckoutState) error {

	amount := MinorUnits(cart.Totals.Total)
	if amount <= 0 {
		return errors.ValidationError("Order total must be greater than zero")
	}

	if state.ClientSecret != "" && state.IntentAmount == amount {
		return nil
	}

	if state.PaymentConfirmed {
		return cartChangedAfterPayment()
	}

	idempotencyKey := uuid.NewString()

	intent, err := s.payments.CreatePaymentIntent(ctx, session.Token, &models.CreatePaymentIntentRequest{
		Amount:         amount,
		Currency:       s.currency,
		IdempotencyKey: idempotencyKey,
		Metadata: map[string]string{
			"user_id":    session.User.ID,
			"item_count": fmt.Sprintf("%d", cart.ItemCount),
		},
	})
	if err != nil {
		return err
	}

	if intent.ClientSecret == "" {
		return errors.PaymentError("Payment could not be started")
	}

	intentID := intent.ID
	if intentID == "" {
		intentID, err = stripe.IntentIDFromClientSecret(intent.ClientSecret)
		if err != nil {
			return errors.PaymentError("Payment could not be started").WithError(err)
		}
	}

	state.ClientSecret = intent.ClientSecret
	state.PaymentIntentID = intentID
	state.IntentAmount = amount
	state.IdempotencyKey = idempotencyKey
	state.PaymentConfirmed = false
	state.OrderID = ""

	return nil
}

// Submit runs validate → intent → confirm → create order → verify → clear.
// An order is only created after the payment intent reports succeeded. The
// step is left unchanged on any failure; progress already made (confirmed
// payment, created order) is kept so a resubmit resumes where it stopped.
func (s *checkoutService) Submit(ctx context.Context, sessionID string, req *models.SubmitPaymentRequest) (*models.CheckoutResult, error) {

	ctx, span := s.tracer.Start(ctx, "checkout.submit")
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)

	result, stage, err := s.submit(ctx, sessionID, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, stage)
		return nil, s.fail(ctx, stage, err)
	}

	metrics.ObserveCheckout(stageComplete, outcomeNoCategory)
	logger.Info("Checkout complete", slog.String("orderId", result.Order.ID))

	return result, nil
}

func (s *checkoutService) submit(ctx context.Context, sessionID string, req *models.SubmitPaymentRequest) (*models.CheckoutResult, string, error) {

	if err := s.validate.Struct(req); err != nil {
		return nil, stageStep, errors.AddValidationError("payment_method_id", "a card is required")
	}

	session, err := s.sessions.RequireSession(ctx, sessionID)
	if err != nil {
		return nil, stageStep, err
	}

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, stageStep, err
	}

	if state.Step != models.StepPayment {
		return nil, stageStep, errors.ValidationError("Complete the shipping step before paying")
	}

	if err := s.validateForm(state.Form); err != nil {
		return nil, stageStep, err
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, stageStep, err
	}

	if cart.IsEmpty() {
		return nil, stageValidate, errors.ValidationError("Your cart is empty")
	}

	if !state.PaymentConfirmed {
		if err := s.stage(ctx, stageValidate, func(ctx context.Context) error {
			return s.validateCart(ctx, cart)
		}); err != nil {
			return nil, stageValidate, err
		}

		if err := s.stage(ctx, stageIntent, func(ctx context.Context) error {
			if err := s.ensurePaymentIntent(ctx, session, cart, state); err != nil {
				return err
			}
			return s.saveState(ctx, sessionID, state)
		}); err != nil {
			return nil, stageIntent, err
		}

		if err := s.stage(ctx, stageConfirm, func(ctx context.Context) error {
			return s.confirmPayment(ctx, state.PaymentIntentID, req.PaymentMethodID)
		}); err != nil {
			return nil, stageConfirm, err
		}

		state.PaymentConfirmed = true
		if err := s.saveState(ctx, sessionID, state); err != nil {
			return nil, stageConfirm, err
		}
	} else if MinorUnits(cart.Totals.Total) != state.IntentAmount {
		return nil, stageCreateOrder, cartChangedAfterPayment()
	}

	var order *models.Order

	if state.OrderID == "" {
		if err := s.stage(ctx, stageCreateOrder, func(ctx context.Context) error {
			order, err = s.orders.CreateOrder(ctx, session.Token, buildOrderRequest(cart, state), "order-"+state.IdempotencyKey)
			if err != nil {
				return orderNotCreated(err)
			}
			return nil
		}); err != nil {
			return nil, stageCreateOrder, err
		}

		state.OrderID = order.ID
		if err := s.saveState(ctx, sessionID, state); err != nil {
			return nil, stageCreateOrder, err
		}
	}

	if err := s.stage(ctx, stageVerifyOrder, func(ctx context.Context) error {
		order, err = s.verifyOrder(ctx, session.Token, state.OrderID)
		return err
	}); err != nil {
		return nil, stageVerifyOrder, err
	}

	if err := s.carts.ClearCart(ctx, sessionID); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to clear cart after order", slog.String("orderId", order.ID), slog.String("error", err.Error()))
	}

	if err := s.saveState(ctx, sessionID, &models.CheckoutState{Step: models.StepComplete, OrderID: order.ID}); err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to mark checkout complete", slog.String("orderId", order.ID), slog.String("error", err.Error()))
	}

	return &models.CheckoutResult{
		Order:       order,
		RedirectURL: fmt.Sprintf("/orders/%s/confirmation", order.ID),
	}, stageComplete, nil
}

// stage runs fn inside a child span named after the stage.
func (s *checkoutService) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {

	ctx, span := s.tracer.Start(ctx, "checkout."+name, trace.WithAttributes(attribute.String("checkout.stage", name)))
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (s *checkoutService) validateCart(ctx context.Context, cart *models.Cart) error {

	products, err := s.products.ValidateProducts(ctx, cart.ProductIDs())
	if err != nil {
		return err
	}

	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok || !product.InStock {
			return errors.ValidationError(fmt.Sprintf("%s is no longer in stock", item.Name)).WithDetail(item.ProductID)
		}
	}

	return nil
}

// confirmPayment confirms the intent and waits out a processing status.
func (s *checkoutService) confirmPayment(ctx context.Context, intentID, paymentMethodID string) error {

	intent, err := s.provider.ConfirmPaymentIntent(ctx, intentID, paymentMethodID)
	if err != nil {
		return classifyPaymentError(err)
	}

	if intent.Status == stripeAPI.PaymentIntentStatusProcessing {
		intent, err = s.pollIntent(ctx, intentID)
		if err != nil {
			return err
		}
	}

	if intent.Status != stripeAPI.PaymentIntentStatusSucceeded {
		return intentStatusError(intent.Status)
	}

	return nil
}

func (s *checkoutService) pollIntent(ctx context.Context, intentID string) (*stripeAPI.PaymentIntent, error) {

	operation := func() (*stripeAPI.PaymentIntent, error) {
		intent, err := s.provider.GetPaymentIntent(ctx, intentID)
		if err != nil {
			ufe := classifyPaymentError(err)
			if !ufe.Retryable {
				return nil, backoff.Permanent(ufe)
			}
			return nil, ufe
		}

		if intent.Status == stripeAPI.PaymentIntentStatusProcessing {
			return intent, errPaymentProcessing
		}

		return intent, nil
	}

	intent, err := backoff.RetryWithData(operation, s.verifyBackOff(ctx))
	if err != nil {
		if stdErrors.Is(err, errPaymentProcessing) {
			return nil, intentStatusError(stripeAPI.PaymentIntentStatusProcessing)
		}
		return nil, err
	}

	return intent, nil
}

// verifyOrder polls the order until the backend reports it paid. Network
// failures and an unpaid status are retried; a failed payment status is final.
func (s *checkoutService) verifyOrder(ctx context.Context, token, orderID string) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)
	attempt := 0

	operation := func() (*models.Order, error) {
		attempt++

		order, err := s.orders.GetOrder(ctx, token, orderID)
		if err != nil {
			if errors.Classify(err).Retryable {
				logger.Warn("Order verification attempt failed", slog.Int("attempt", attempt), slog.String("error", err.Error()))
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		if order.PaymentStatus == models.PaymentStatusFailed {
			return nil, backoff.Permanent(errOrderPaymentFail)
		}

		if !order.IsPaid() {
			return order, errOrderUnpaid
		}

		return order, nil
	}

	order, err := backoff.RetryWithData(operation, s.verifyBackOff(ctx))
	if err != nil {
		if stdErrors.Is(err, errOrderPaymentFail) {
			return nil, orderPaymentFailed(orderID, err)
		}
		return nil, orderNotConfirmed(orderID, err)
	}

	return order, nil
}

func (s *checkoutService) verifyBackOff(ctx context.Context) backoff.BackOff {

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = s.cfg.VerifyInitialDelay
	exp.MaxInterval = s.cfg.VerifyMaxDelay
	exp.MaxElapsedTime = 0

	retries := s.cfg.VerifyAttempts
	if retries > 0 {
		retries--
	}

	return backoff.WithContext(backoff.WithMaxRetries(exp, retries), ctx)
}

func buildOrderRequest(cart *models.Cart, state *models.CheckoutState) *models.CreateOrderRequest {

	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	billing := state.Form.BillingAddress
	if state.Form.BillingSame || billing == nil {
		shipping := state.Form.ShippingAddress
		billing = &shipping
	}

	return &models.CreateOrderRequest{
		Items:           items,
		ShippingAddress: state.Form.ShippingAddress,
		BillingAddress:  billing,
		Email:           state.Form.Email,
		Phone:           state.Form.Phone,
		Totals:          cart.Totals,
		PaymentIntentID: state.PaymentIntentID,
	}
}
