package models

import "time"

type CheckoutStep string

const (
	StepCartReview CheckoutStep = "cart_review"
	StepShipping   CheckoutStep = "shipping"
	StepPayment    CheckoutStep = "payment"
	StepComplete   CheckoutStep = "complete"
)

// ShippingForm is the address/contact step of checkout.
type ShippingForm struct {
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone,omitempty" validate:"omitempty,e164"`
	ShippingAddress Address  `json:"shipping_address"`
	BillingSame     bool     `json:"billing_same_as_shipping"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
}

// CheckoutState is persisted per session between requests.
type CheckoutState struct {
	Step             CheckoutStep  `json:"step"`
	Form             *ShippingForm `json:"form,omitempty"`
	ClientSecret     string        `json:"client_secret,omitempty"`
	PaymentIntentID  string        `json:"payment_intent_id,omitempty"`
	IntentAmount     int64         `json:"intent_amount,omitempty"`
	IdempotencyKey   string        `json:"idempotency_key,omitempty"`
	PaymentConfirmed bool          `json:"payment_confirmed,omitempty"`
	OrderID          string        `json:"order_id,omitempty"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type SubmitPaymentRequest struct {
	PaymentMethodID string `json:"payment_method_id" validate:"required,startswith=pm_"`
}

type CheckoutResult struct {
	Order       *Order `json:"order"`
	RedirectURL string `json:"redirect_url"`
}
