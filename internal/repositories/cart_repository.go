package repository

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

// CartRepository talks to the server-side cart of an authenticated user.
type CartRepository interface {
	GetCart(ctx context.Context, token string) (*models.Cart, error)
	AddItem(ctx context.Context, token string, item *models.CartItem) (*models.Cart, error)
	UpdateItem(ctx context.Context, token string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, token string, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, token string) error
}

type cartRepository struct {
	api *APIClient
}

func NewCartRepo(api *APIClient) CartRepository {
	return &cartRepository{api: api}
}

func (r *cartRepository) GetCart(ctx context.Context, token string) (*models.Cart, error) {

	var cart models.Cart

	err := r.api.Do(ctx, Request{Method: http.MethodGet, Path: "/cart", Token: token}, &cart)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepository) AddItem(ctx context.Context, token string, item *models.CartItem) (*models.Cart, error) {

	var cart models.Cart

	err := r.api.Do(ctx, Request{Method: http.MethodPost, Path: "/cart/items", Token: token, Body: item}, &cart)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepository) UpdateItem(ctx context.Context, token string, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	var cart models.Cart

	err := r.api.Do(ctx, Request{Method: http.MethodPut, Path: "/cart/items", Token: token, Body: req}, &cart)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, token string, req *models.RemoveItemRequest) (*models.Cart, error) {

	var cart models.Cart

	err := r.api.Do(ctx, Request{Method: http.MethodDelete, Path: "/cart/items", Token: token, Body: req}, &cart)
	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepository) ClearCart(ctx context.Context, token string) error {

	return r.api.Do(ctx, Request{Method: http.MethodDelete, Path: "/cart", Token: token}, nil)
}
