package models

import "github.com/shopspring/decimal"

type CreatePaymentIntentRequest struct {
	Amount         int64             `json:"amount"` // minor units
	Currency       string            `json:"currency"`
	IdempotencyKey string            `json:"idempotency_key"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type PaymentIntent struct {
	ID           string          `json:"payment_intent_id"`
	ClientSecret string          `json:"client_secret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Status       string          `json:"status,omitempty"`
}
