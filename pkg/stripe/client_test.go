package stripe_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	paymentClient "github.com/aaravmahajanofficial/pawsome-storefront/pkg/stripe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

func useTestBackend(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	original := stripe.GetBackend(stripe.APIBackend)
	stripe.SetBackend(stripe.APIBackend, stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}))
	t.Cleanup(func() { stripe.SetBackend(stripe.APIBackend, original) })
}

func TestConfirmPaymentIntent(t *testing.T) {
	t.Run("Success - Intent confirmed", func(t *testing.T) {
		// Arrange
		useTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payment_intents/pi_123/confirm", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "pm_card_visa", r.PostForm.Get("payment_method"))
			assert.Equal(t, "https://shop.example/checkout", r.PostForm.Get("return_url"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","status":"succeeded","amount":4210}`))
		})
		client := paymentClient.NewStripeClient("sk_test_123", "https://shop.example/checkout")

		// Act
		intent, err := client.ConfirmPaymentIntent(t.Context(), "pi_123", "pm_card_visa")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stripe.PaymentIntentStatusSucceeded, intent.Status)
		assert.Equal(t, int64(4210), intent.Amount)
	})

	t.Run("Failure - Card declined", func(t *testing.T) {
		// Arrange
		useTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
		})
		client := paymentClient.NewStripeClient("sk_test_123", "")

		// Act
		intent, err := client.ConfirmPaymentIntent(t.Context(), "pi_123", "pm_card_chargeDeclined")

		// Assert
		assert.Nil(t, intent)
		var stripeErr *stripe.Error
		require.ErrorAs(t, err, &stripeErr)
		assert.Equal(t, stripe.ErrorCodeCardDeclined, stripeErr.Code)
	})
}

func TestGetPaymentIntent(t *testing.T) {
	t.Run("Success - Intent fetched", func(t *testing.T) {
		// Arrange
		useTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/payment_intents/pi_789", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"pi_789","object":"payment_intent","status":"processing"}`))
		})
		client := paymentClient.NewStripeClient("sk_test_123", "")

		// Act
		intent, err := client.GetPaymentIntent(t.Context(), "pi_789")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, stripe.PaymentIntentStatusProcessing, intent.Status)
	})
}

func TestIntentIDFromClientSecret(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		want    string
		wantErr bool
	}{
		{name: "Success - Standard secret", secret: "pi_3Nabc123_secret_XyZ", want: "pi_3Nabc123"},
		{name: "Failure - Missing secret marker", secret: "pi_3Nabc123", wantErr: true},
		{name: "Failure - Not an intent", secret: "seti_123_secret_abc", wantErr: true},
		{name: "Failure - Empty id", secret: "pi__secret_abc", wantErr: true},
		{name: "Failure - Empty", secret: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := paymentClient.IntentIDFromClientSecret(tc.secret)

			if tc.wantErr {
				assert.ErrorIs(t, err, paymentClient.ErrMalformedClientSecret)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
