package service

import (
	"math"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/pawsome-storefront/internal/repositories"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// normalizeProduct maps the backend payload onto the UI model and fills in
// the derived display fields.
func normalizeProduct(rec *repository.ProductRecord, ugc *bluemonday.Policy) *models.Product {

	product := &models.Product{
		ID:          rec.ID,
		Slug:        rec.Slug,
		Name:        rec.Name,
		Description: ugc.Sanitize(rec.Description),
		Brand:       rec.Brand,
		PetType:     rec.PetType,
		BasePrice:   rec.Price,
		Stock:       rec.Stock,
		Images:      imageURLs(rec.Images),
		Ratings:     models.Rating{Average: rec.Ratings.Average, Count: rec.Ratings.Count},
		ViewCount:   rec.Views,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}

	if product.ID == "" {
		product.ID = rec.MongoID
	}

	if rec.Category != nil {
		category := &models.Category{ID: rec.Category.ID, Name: rec.Category.Name, Slug: rec.Category.Slug}
		if category.ID == "" {
			category.ID = rec.Category.MongoID
		}
		product.Category = category
	}

	for _, v := range rec.Variants {
		price := rec.Price
		if v.Price != nil {
			price = *v.Price
		}

		product.Variants = append(product.Variants, models.Variant{
			SKU:    v.SKU,
			Color:  v.Color,
			Size:   v.Size,
			Price:  price,
			Stock:  v.Stock,
			Images: imageURLs(v.Images),
		})
	}

	product.DisplayPrice = displayPrice(product)
	product.InStock = inStock(product)
	product.PrimaryImage = primaryImage(rec, product)
	product.AverageRating = math.Round(rec.Ratings.Average*10) / 10
	product.ReviewCount = rec.Ratings.Count

	return product
}

// displayPrice is the lowest in-stock variant price, else the base price.
func displayPrice(p *models.Product) decimal.Decimal {

	var lowest *decimal.Decimal
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Stock <= 0 {
			continue
		}
		if lowest == nil || v.Price.LessThan(*lowest) {
			lowest = &v.Price
		}
	}

	if lowest == nil {
		return p.BasePrice
	}

	return *lowest
}

func inStock(p *models.Product) bool {

	if len(p.Variants) == 0 {
		return p.Stock > 0
	}

	for _, v := range p.Variants {
		if v.Stock > 0 {
			return true
		}
	}

	return false
}

func primaryImage(rec *repository.ProductRecord, p *models.Product) string {

	for _, img := range rec.Images {
		if img.IsPrimary && img.URL != "" {
			return img.URL
		}
	}

	if len(p.Images) > 0 {
		return p.Images[0]
	}

	for _, v := range p.Variants {
		if len(v.Images) > 0 {
			return v.Images[0]
		}
	}

	return ""
}

func imageURLs(images []repository.ImageRecord) []string {

	urls := make([]string, 0, len(images))
	for _, img := range images {
		if img.URL != "" {
			urls = append(urls, img.URL)
		}
	}

	return urls
}
