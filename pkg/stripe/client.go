package stripe

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
)

type PaymentIntent = stripe.PaymentIntent

var ErrMalformedClientSecret = errors.New("malformed payment intent client secret")

// Client confirms payment intents that the backend has already created.
type Client interface {
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID, paymentMethodID string) (*stripe.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error)
}

type stripeClient struct {
	returnURL string
}

func NewStripeClient(apiKey string, returnURL string) Client {
	stripe.Key = apiKey

	return &stripeClient{returnURL: returnURL}
}

// ConfirmPaymentIntent charges the payment method against the intent. Cards
// that need 3-D Secure come back as requires_action.
func (s *stripeClient) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string, paymentMethodID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethodID),
	}
	params.Context = ctx

	if s.returnURL != "" {
		params.ReturnURL = stripe.String(s.returnURL)
	}

	return paymentintent.Confirm(paymentIntentID, params)
}

func (s *stripeClient) GetPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	return paymentintent.Get(paymentIntentID, params)
}

// IntentIDFromClientSecret extracts "pi_123" from "pi_123_secret_abc".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || !strings.HasPrefix(id, "pi_") || len(id) <= len("pi_") {
		return "", ErrMalformedClientSecret
	}

	return id, nil
}

// 1️⃣ Backend creates the Payment Intent
// → "I want to charge $42.10 for this cart"
// 2️⃣ Shopper picks a Payment Method
// → "This is the customer's Visa card."
// 3️⃣ Confirm Payment Intent
// → "Charge the card now!"
// 4️⃣ Backend records the order against the confirmed intent
