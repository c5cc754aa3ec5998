package repository

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

type UserRepository interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*models.User, error)
}

type userRepository struct {
	api *APIClient
}

func NewUserRepo(api *APIClient) UserRepository {
	return &userRepository{api: api}
}

func (r *userRepository) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	var auth models.AuthResponse

	err := r.api.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/login", Body: req}, &auth)
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

func (r *userRepository) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	var auth models.AuthResponse

	err := r.api.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/register", Body: req}, &auth)
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

func (r *userRepository) Logout(ctx context.Context, token string) error {

	return r.api.Do(ctx, Request{Method: http.MethodPost, Path: "/auth/logout", Token: token}, nil)
}

func (r *userRepository) GetProfile(ctx context.Context, token string) (*models.User, error) {

	var user models.User

	err := r.api.Do(ctx, Request{Method: http.MethodGet, Path: "/auth/me", Token: token}, &user)
	if err != nil {
		return nil, err
	}

	return &user, nil
}
