package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	AddToCart(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, req *models.RemoveItemRequest) (*models.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
	ApplyPromoCode(ctx context.Context, sessionID, code string) (*models.Cart, error)
	RemovePromoCode(ctx context.Context, sessionID string) (*models.Cart, error)
	MergeGuestCart(ctx context.Context, sessionID, token string) error
}

type cartService struct {
	repo     repository.CartRepository
	products ProductService
	sessions SessionProvider
	store    repository.SessionStore
	pricing  Pricing
	now      func() time.Time
}

func NewCartService(repo repository.CartRepository, products ProductService, sessions SessionProvider, store repository.SessionStore, pricing Pricing) CartService {
	return &cartService{
		repo:     repo,
		products: products,
		sessions: sessions,
		store:    store,
		pricing:  pricing,
		now:      time.Now,
	}
}

func (s *cartService) loadLocal(ctx context.Context, sessionID string) (*models.Cart, error) {

	raw, _, err := s.store.Get(ctx, sessionID, repository.KeyCart)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return SanitizeCart(raw, s.pricing), nil
}

func (s *cartService) persist(ctx context.Context, sessionID string, cart *models.Cart) (*models.Cart, error) {

	Recalculate(cart, s.pricing)
	cart.UpdatedAt = s.now().UTC()

	if err := repository.SetJSON(ctx, s.store, sessionID, repository.KeyCart, cart); err != nil {
		return nil, errors.StorageError("Failed to save cart").WithError(err)
	}

	return cart, nil
}

// adopt makes the server's cart the local state. The promo code only lives
// on the storefront side, so it is carried over.
func (s *cartService) adopt(ctx context.Context, sessionID string, server *models.Cart, promoCode string) (*models.Cart, error) {

	cart := &models.Cart{}
	if server != nil {
		*cart = *server
	}

	if cart.PromoCode == "" {
		cart.PromoCode = promoCode
	}

	return s.persist(ctx, sessionID, cart)
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {

	logger := middleware.LoggerFromContext(ctx)

	local, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session == nil {
		return local, nil
	}

	server, err := s.repo.GetCart(ctx, session.Token)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNetwork) {
			logger.Warn("Server cart unreachable, serving stored copy", slog.String("error", err.Error()))
			return local, nil
		}
		return nil, err
	}

	return s.adopt(ctx, sessionID, server, local.PromoCode)
}

func (s *cartService) AddToCart(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error) {

	if req.Quantity <= 0 {
		return nil, errors.AddValidationError("quantity", "must be greater than zero")
	}
	if req.Quantity > s.pricing.MaxQuantity {
		return nil, errors.AddValidationError("quantity", fmt.Sprintf("must be at most %d", s.pricing.MaxQuantity))
	}

	product, err := s.products.LookupProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	item, stock, err := s.snapshot(product, req)
	if err != nil {
		return nil, err
	}

	local, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	existing := 0
	for _, line := range local.Items {
		if line.Key() == item.Key() {
			existing = line.Quantity
			break
		}
	}

	merged := existing + req.Quantity
	if merged > s.pricing.MaxQuantity {
		return nil, errors.ValidationError(fmt.Sprintf("You can add at most %d of this item", s.pricing.MaxQuantity))
	}
	if merged > stock {
		return nil, errors.ValidationError(fmt.Sprintf("Only %d of %s left in stock", stock, product.Name))
	}

	session, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session != nil {
		server, err := s.repo.AddItem(ctx, session.Token, item)
		if err != nil {
			return nil, err
		}

		return s.adopt(ctx, sessionID, server, local.PromoCode)
	}

	if existing > 0 {
		for i := range local.Items {
			if local.Items[i].Key() == item.Key() {
				local.Items[i].Quantity = merged
				local.Items[i].UnitPrice = item.UnitPrice
				break
			}
		}
	} else {
		local.Items = append(local.Items, *item)
	}

	return s.persist(ctx, sessionID, local)
}

// snapshot builds the cart line for the chosen variant and reports the
// stock available for it.
func (s *cartService) snapshot(product *models.Product, req *models.AddItemRequest) (*models.CartItem, int, error) {

	if !product.InStock {
		return nil, 0, errors.ValidationError(fmt.Sprintf("%s is out of stock", product.Name))
	}

	item := &models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Image:     product.PrimaryImage,
		Color:     strings.TrimSpace(req.Color),
		Size:      strings.TrimSpace(req.Size),
		Quantity:  req.Quantity,
		UnitPrice: product.BasePrice,
		AddedAt:   s.now().UTC(),
	}

	if len(product.Variants) == 0 {
		return item, product.Stock, nil
	}

	variant, ok := product.FindVariant(item.Color, item.Size)
	if !ok {
		return nil, 0, errors.ValidationError("The selected option is not available").
			WithDetail(fmt.Sprintf("color=%q size=%q", item.Color, item.Size))
	}

	item.UnitPrice = variant.Price
	if len(variant.Images) > 0 {
		item.Image = variant.Images[0]
	}

	return item, variant.Stock, nil
}

func (s *cartService) UpdateItemQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {

	if req.Quantity < 0 {
		return nil, errors.AddValidationError("quantity", "must not be negative")
	}
	if req.Quantity > s.pricing.MaxQuantity {
		return nil, errors.AddValidationError("quantity", fmt.Sprintf("must be at most %d", s.pricing.MaxQuantity))
	}

	req.Color = strings.TrimSpace(req.Color)
	req.Size = strings.TrimSpace(req.Size)

	if req.Quantity == 0 {
		return s.RemoveItem(ctx, sessionID, &models.RemoveItemRequest{ProductID: req.ProductID, Color: req.Color, Size: req.Size})
	}

	local, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session != nil {
		server, err := s.repo.UpdateItem(ctx, session.Token, req)
		if err != nil {
			return nil, err
		}

		return s.adopt(ctx, sessionID, server, local.PromoCode)
	}

	key := models.CartItem{ProductID: req.ProductID, Color: req.Color, Size: req.Size}.Key()
	found := false
	for i := range local.Items {
		if local.Items[i].Key() == key {
			local.Items[i].Quantity = req.Quantity
			found = true
			break
		}
	}

	if !found {
		return nil, errors.NotFoundError("Item not found in cart")
	}

	return s.persist(ctx, sessionID, local)
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID string, req *models.RemoveItemRequest) (*models.Cart, error) {
	req.Color = strings.TrimSpace(req.Color)
	req.Size = strings.TrimSpace(req.Size)

	local, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session != nil {
		server, err := s.repo.RemoveItem(ctx, session.Token, req)
		if err != nil {
			return nil, err
		}

		return s.adopt(ctx, sessionID, server, local.PromoCode)
	}

	key := models.CartItem{ProductID: req.ProductID, Color: req.Color, Size: req.Size}.Key()
	kept := local.Items[:0]
	for _, item := range local.Items {
		if item.Key() != key {
			kept = append(kept, item)
		}
	}

	if len(kept) == len(local.Items) {
		return nil, errors.NotFoundError("Item not found in cart")
	}

	local.Items = kept

	return s.persist(ctx, sessionID, local)
}

func (s *cartService) ClearCart(ctx context.Context, sessionID string) error {

	session, err := s.sessions.Current(ctx, sessionID)
	if err != nil {
		return err
	}

	if session != nil {
		if err := s.repo.ClearCart(ctx, session.Token); err != nil {
			return err
		}
	}

	if err := s.store.Delete(ctx, sessionID, repository.KeyCart); err != nil {
		return errors.StorageError("Failed to clear cart").WithError(err)
	}

	return nil
}

func (s *cartService) ApplyPromoCode(ctx context.Context, sessionID, code string) (*models.Cart, error) {

	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := s.pricing.PromoPercent(code); !ok {
		return nil, errors.ValidationError("Promo code is not valid")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, errors.ValidationError("Add items to your cart before applying a promo code")
	}

	cart.PromoCode = code

	return s.persist(ctx, sessionID, cart)
}

func (s *cartService) RemovePromoCode(ctx context.Context, sessionID string) (*models.Cart, error) {

	cart, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.PromoCode = ""

	return s.persist(ctx, sessionID, cart)
}

// MergeGuestCart pushes each guest line to the server cart, then adopts the
// server cart. Lines the server rejects are dropped; a transport failure
// leaves the guest cart untouched.
func (s *cartService) MergeGuestCart(ctx context.Context, sessionID, token string) error {

	logger := middleware.LoggerFromContext(ctx)

	guest, err := s.loadLocal(ctx, sessionID)
	if err != nil {
		return err
	}

	for i := range guest.Items {
		item := guest.Items[i]
		if _, err := s.repo.AddItem(ctx, token, &item); err != nil {
			if errors.HasCode(err, errors.ErrCodeNetwork) || errors.HasCode(err, errors.ErrCodeUpstream) {
				return err
			}
			logger.Warn("Guest cart line rejected by server",
				slog.String("productId", item.ProductID),
				slog.String("error", err.Error()),
			)
		}
	}

	server, err := s.repo.GetCart(ctx, token)
	if err != nil {
		return err
	}

	if _, err := s.adopt(ctx, sessionID, server, guest.PromoCode); err != nil {
		return err
	}

	logger.Info("Guest cart merged", slog.Int("lines", len(guest.Items)))

	return nil
}
