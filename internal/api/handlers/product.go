package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/errors"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	productService service.ProductService
	validator      *validator.Validate
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService, validator: validator.New()}
}

// ListProducts godoc
//
//	@Summary		List catalog products
//	@Tags			Products
//	@Produce		json
//	@Param			page		query		int		false	"Page number"
//	@Param			limit		query		int		false	"Items per page (max 100)"
//	@Param			category	query		string	false	"Category id or slug"
//	@Param			pet_type	query		string	false	"dog, cat, bird, fish, small-pet, reptile"
//	@Param			sort		query		string	false	"newest, price_asc, price_desc, rating, popular"
//	@Success		200			{object}	models.ProductList
//	@Failure		400			{object}	response.ErrorResponse
//	@Failure		503			{object}	response.ErrorResponse
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := parseProductFilter(r)
		if err != nil {
			logger.Warn("Invalid product query", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if !utils.ValidateOrRespond(w, h.validator, filter) {
			logger.Warn("Product query failed validation")
			return
		}

		list, err := h.productService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Debug("Products listed", slog.Int("count", len(list.Products)), slog.Int("total", list.Pagination.Total))
		response.Success(w, http.StatusOK, list)
	}
}

// GetProduct godoc
//
//	@Summary	Get a product by id or slug
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"Product id or slug"
//	@Success	200	{object}	models.Product
//	@Failure	404	{object}	response.ErrorResponse
//	@Router		/products/{id} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id := strings.TrimSpace(r.PathValue("id"))
		if id == "" {
			logger.Warn("Missing product id")
			response.Error(w, errors.BadRequestError("Product id is required"))
			return
		}

		logger = logger.With(slog.String("productId", id))

		product, err := h.productService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func parseProductFilter(r *http.Request) (*models.ProductFilter, error) {

	q := r.URL.Query()

	page, err := queryInt(q, "page")
	if err != nil {
		return nil, err
	}

	limit, err := queryInt(q, "limit")
	if err != nil {
		return nil, err
	}

	filter := &models.ProductFilter{
		Page:     page,
		Limit:    limit,
		Category: strings.TrimSpace(q.Get("category")),
		PetType:  strings.TrimSpace(q.Get("pet_type")),
		Brand:    strings.TrimSpace(q.Get("brand")),
		MinPrice: strings.TrimSpace(q.Get("min_price")),
		MaxPrice: strings.TrimSpace(q.Get("max_price")),
		Search:   strings.TrimSpace(q.Get("search")),
		Sort:     strings.TrimSpace(q.Get("sort")),
	}

	if raw := q.Get("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.AddValidationError("in_stock", "must be true or false")
		}
		filter.InStock = inStock
	}

	return filter, nil
}
