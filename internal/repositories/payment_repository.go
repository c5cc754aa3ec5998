package repository

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

// PaymentRepository asks the backend to open a payment intent with the
// provider; only the backend holds the provider's secret key.
type PaymentRepository interface {
	CreatePaymentIntent(ctx context.Context, token string, req *models.CreatePaymentIntentRequest) (*models.PaymentIntent, error)
}

type paymentRepository struct {
	api *APIClient
}

func NewPaymentRepo(api *APIClient) PaymentRepository {
	return &paymentRepository{api: api}
}

func (r *paymentRepository) CreatePaymentIntent(ctx context.Context, token string, req *models.CreatePaymentIntentRequest) (*models.PaymentIntent, error) {

	var intent models.PaymentIntent

	err := r.api.Do(ctx, Request{
		Method:         http.MethodPost,
		Path:           "/payments/create-intent",
		Token:          token,
		Body:           req,
		IdempotencyKey: req.IdempotencyKey,
	}, &intent)
	if err != nil {
		return nil, err
	}

	return &intent, nil
}
