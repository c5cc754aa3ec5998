package service

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/cache"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

type ProductService interface {
	ListProducts(ctx context.Context, filter *models.ProductFilter) (*models.ProductList, error)
	GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error)
	LookupProduct(ctx context.Context, idOrSlug string) (*models.Product, error)
	ValidateProducts(ctx context.Context, ids []string) (map[string]*models.Product, error)
}

type productService struct {
	repo          repository.ProductRepository
	cache         cache.Cache
	cfg           *config.CacheConfig
	strict        *bluemonday.Policy
	ugc           *bluemonday.Policy
	maxConcurrent int
}

func NewProductService(repo repository.ProductRepository, cache cache.Cache, cfg *config.CacheConfig, maxConcurrent int) ProductService {

	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &productService{
		repo:          repo,
		cache:         cache,
		cfg:           cfg,
		strict:        bluemonday.StrictPolicy(),
		ugc:           bluemonday.UGCPolicy(),
		maxConcurrent: maxConcurrent,
	}
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductFilter) (*models.ProductList, error) {

	logger := middleware.LoggerFromContext(ctx)

	query := s.buildQuery(filter)
	key := cache.Key(cache.ProductListKeyPrefix, query.Encode())

	var cached models.ProductList
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product list cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if found {
		return &cached, nil
	}

	page, err := s.repo.ListProducts(ctx, query)
	if err != nil {
		return nil, wrapBackendError(err, "Failed to fetch products")
	}

	list := &models.ProductList{
		Products:   make([]*models.Product, 0, len(page.Products)),
		Pagination: paginationFrom(page, filter),
	}
	for i := range page.Products {
		list.Products = append(list.Products, normalizeProduct(&page.Products[i], s.ugc))
	}

	if err := s.cache.Set(ctx, key, list, s.cfg.ProductTTL); err != nil {
		logger.Warn("Product list cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return list, nil
}

// buildQuery fills in paging defaults and strips markup from free text.
// url.Values.Encode sorts by key, which makes the encoded query a canonical
// cache key.
func (s *productService) buildQuery(filter *models.ProductFilter) url.Values {

	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = defaultLimit
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(filter.Page))
	query.Set("limit", strconv.Itoa(filter.Limit))

	set := func(name, value string) {
		value = strings.TrimSpace(s.strict.Sanitize(value))
		if value != "" {
			query.Set(name, value)
		}
	}

	set("category", filter.Category)
	set("petType", filter.PetType)
	set("brand", filter.Brand)
	set("minPrice", filter.MinPrice)
	set("maxPrice", filter.MaxPrice)
	set("search", strings.ToLower(filter.Search))
	set("sort", filter.Sort)

	if filter.InStock {
		query.Set("inStock", "true")
	}

	return query
}

func paginationFrom(page *repository.ProductPage, filter *models.ProductFilter) models.Pagination {

	p := models.Pagination{
		Page:       page.Pagination.Page,
		Limit:      page.Pagination.Limit,
		Total:      page.Pagination.Total,
		TotalPages: page.Pagination.Pages,
	}

	if p.Page < 1 {
		p.Page = filter.Page
	}
	if p.Limit < 1 {
		p.Limit = filter.Limit
	}
	if p.TotalPages == 0 && p.Total > 0 {
		p.TotalPages = (p.Total + p.Limit - 1) / p.Limit
	}

	p.HasNext = p.Page < p.TotalPages
	p.HasPrev = p.Page > 1

	return p
}

// LookupProduct serves from cache when possible and never counts a view.
func (s *productService) LookupProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {

	logger := middleware.LoggerFromContext(ctx)

	idOrSlug = strings.TrimSpace(idOrSlug)
	if idOrSlug == "" {
		return nil, errors.BadRequestError("Product id is required")
	}

	key := cache.Key(cache.ProductKeyPrefix, idOrSlug)

	var product *models.Product

	var cached models.Product
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	if found {
		product = &cached
	} else {
		product, err = s.fetchProduct(ctx, idOrSlug)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Set(ctx, key, product, s.cfg.ProductTTL); err != nil {
			logger.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}

	return product, nil
}

// GetProduct is LookupProduct for a shopper viewing the product page, so it
// also counts a view.
func (s *productService) GetProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {

	product, err := s.LookupProduct(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if err := s.repo.RecordView(ctx, product.ID); err != nil {
		middleware.LoggerFromContext(ctx).Debug("Failed to record product view", slog.String("productId", product.ID), slog.String("error", err.Error()))
	}

	return product, nil
}

func (s *productService) fetchProduct(ctx context.Context, idOrSlug string) (*models.Product, error) {

	record, err := s.repo.GetProduct(ctx, idOrSlug)
	if err != nil {
		return nil, wrapBackendError(err, "Failed to fetch product")
	}

	return normalizeProduct(record, s.ugc), nil
}

// ValidateProducts fetches every id fresh, bypassing the cache. Any id that
// no longer resolves fails the whole call with a validation error.
func (s *productService) ValidateProducts(ctx context.Context, ids []string) (map[string]*models.Product, error) {

	var mu sync.Mutex
	products := make(map[string]*models.Product, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for _, id := range ids {
		g.Go(func() error {
			product, err := s.fetchProduct(gctx, id)
			if err != nil {
				if errors.HasCode(err, errors.ErrCodeNotFound) {
					return errors.ValidationError("Some items in your cart are no longer available").WithDetail(id).WithError(err)
				}
				return err
			}

			mu.Lock()
			products[id] = product
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return products, nil
}

// wrapBackendError keeps AppErrors from the API client as they are and
// turns anything else into an internal error.
func wrapBackendError(err error, message string) error {
	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	return errors.InternalError(message).WithError(err)
}
