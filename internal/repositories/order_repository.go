package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*models.Order, error)
	ListOrders(ctx context.Context, token string, page, limit int) (*models.OrderHistoryResponse, error)
}

type orderRepository struct {
	api *APIClient
}

func NewOrderRepo(api *APIClient) OrderRepository {
	return &orderRepository{api: api}
}

func (r *orderRepository) CreateOrder(ctx context.Context, token string, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error) {

	var order models.Order

	err := r.api.Do(ctx, Request{
		Method:         http.MethodPost,
		Path:           "/orders",
		Token:          token,
		Body:           req,
		IdempotencyKey: idempotencyKey,
	}, &order)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {

	var order models.Order

	err := r.api.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/orders/" + url.PathEscape(orderID),
		Route:  "/orders/{id}",
		Token:  token,
	}, &order)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, token string, page, limit int) (*models.OrderHistoryResponse, error) {

	var history models.OrderHistoryResponse

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	err := r.api.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Query:  query,
		Token:  token,
	}, &history)
	if err != nil {
		return nil, err
	}

	return &history, nil
}
