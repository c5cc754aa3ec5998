package repository

import (
	"context"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ProductRecord is the product as the backend sends it.
type ProductRecord struct {
	ID          string          `json:"id"`
	MongoID     string          `json:"_id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	PetType     string          `json:"petType"`
	Category    *CategoryRecord `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []ImageRecord   `json:"images"`
	Variants    []VariantRecord `json:"variants"`
	Ratings     struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	} `json:"ratings"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRecord struct {
	ID      string `json:"id"`
	MongoID string `json:"_id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
}

type ImageRecord struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// VariantRecord is a color/size configuration. A nil Price means the variant
// sells at the product's base price.
type VariantRecord struct {
	SKU    string           `json:"sku"`
	Color  string           `json:"color"`
	Size   string           `json:"size"`
	Price  *decimal.Decimal `json:"price"`
	Stock  int              `json:"stock"`
	Images []ImageRecord    `json:"images"`
}

type ProductPage struct {
	Products   []ProductRecord `json:"products"`
	Pagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

type ProductRepository interface {
	ListProducts(ctx context.Context, query url.Values) (*ProductPage, error)
	GetProduct(ctx context.Context, idOrSlug string) (*ProductRecord, error)
	RecordView(ctx context.Context, productID string) error
}

type productRepository struct {
	api *APIClient
}

func NewProductRepo(api *APIClient) ProductRepository {
	return &productRepository{api: api}
}

func (r *productRepository) ListProducts(ctx context.Context, query url.Values) (*ProductPage, error) {

	var page ProductPage

	err := r.api.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   "/products",
		Route:  "/products",
		Query:  query,
	}, &page)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

func (r *productRepository) GetProduct(ctx context.Context, idOrSlug string) (*ProductRecord, error) {

	req := Request{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(idOrSlug),
		Route:  "/products/{id}",
	}

	if !objectIDPattern.MatchString(idOrSlug) {
		req.Path = "/products/slug/" + url.PathEscape(idOrSlug)
		req.Route = "/products/slug/{slug}"
	}

	var product ProductRecord
	if err := r.api.Do(ctx, req, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) RecordView(ctx context.Context, productID string) error {

	return r.api.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/products/" + url.PathEscape(productID) + "/view",
		Route:  "/products/{id}/view",
	}, nil)
}
