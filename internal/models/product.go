package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Variant is a purchasable color/size configuration with its own price, stock and images.
type Variant struct {
	SKU    string          `json:"sku,omitempty"`
	Color  string          `json:"color,omitempty"`
	Size   string          `json:"size,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Images []string        `json:"images,omitempty"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product is the UI-facing product. The fields after Ratings are derived
// from the backend payload and never sent back.
type Product struct {
	ID          string          `json:"id"`
	Slug        string          `json:"slug"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand,omitempty"`
	PetType     string          `json:"pet_type,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images,omitempty"`
	Variants    []Variant       `json:"variants,omitempty"`
	Ratings     Rating          `json:"ratings"`
	ViewCount   int64           `json:"view_count"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	DisplayPrice  decimal.Decimal `json:"display_price"`
	InStock       bool            `json:"in_stock"`
	PrimaryImage  string          `json:"primary_image,omitempty"`
	AverageRating float64         `json:"average_rating"`
	ReviewCount   int             `json:"review_count"`
}

// FindVariant returns the variant matching color and size. Empty strings match
// products that do not vary along that axis.
func (p *Product) FindVariant(color, size string) (*Variant, bool) {
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Color == color && v.Size == size {
			return v, true
		}
	}

	return nil, false
}

// ProductFilter carries the list query. Zero values are omitted from the
// backend request.
type ProductFilter struct {
	Page     int    `json:"page" validate:"omitempty,min=1"`
	Limit    int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Category string `json:"category,omitempty" validate:"omitempty,max=64"`
	PetType  string `json:"pet_type,omitempty" validate:"omitempty,oneof=dog cat bird fish small-pet reptile"`
	Brand    string `json:"brand,omitempty" validate:"omitempty,max=64"`
	MinPrice string `json:"min_price,omitempty" validate:"omitempty,numeric"`
	MaxPrice string `json:"max_price,omitempty" validate:"omitempty,numeric"`
	InStock  bool   `json:"in_stock,omitempty"`
	Search   string `json:"search,omitempty" validate:"omitempty,max=100"`
	Sort     string `json:"sort,omitempty" validate:"omitempty,oneof=newest price_asc price_desc rating popular"`
}

type ProductList struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}
