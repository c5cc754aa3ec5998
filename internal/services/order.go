package service

import (
	"context"
	"strings"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
)

const maxOrdersPageSize = 50

type OrderService interface {
	ListOrders(ctx context.Context, sessionID string, page, pageSize int) (*models.OrderHistoryResponse, error)
	GetOrder(ctx context.Context, sessionID, orderID string) (*models.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	sessions SessionProvider
}

func NewOrderService(repo repository.OrderRepository, sessions SessionProvider) OrderService {
	return &orderService{repo: repo, sessions: sessions}
}

func (s *orderService) ListOrders(ctx context.Context, sessionID string, page, pageSize int) (*models.OrderHistoryResponse, error) {

	session, err := s.sessions.RequireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	pageSize = min(pageSize, maxOrdersPageSize)

	history, err := s.repo.ListOrders(ctx, session.Token, page, pageSize)
	if err != nil {
		return nil, wrapBackendError(err, "Failed to fetch orders")
	}

	if history.Orders == nil {
		history.Orders = []models.Order{}
	}

	p := &history.Pagination
	if p.Page == 0 {
		p.Page = page
	}
	if p.Limit == 0 {
		p.Limit = pageSize
	}
	if p.TotalPages == 0 && p.Total > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}
	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1

	return history, nil
}

// GetOrder always goes to the backend so the status shown is current.
func (s *orderService) GetOrder(ctx context.Context, sessionID, orderID string) (*models.Order, error) {

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, errors.BadRequestError("Order id is required")
	}

	session, err := s.sessions.RequireSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.GetOrder(ctx, session.Token, orderID)
	if err != nil {
		return nil, wrapBackendError(err, "Failed to fetch order")
	}

	return order, nil
}
