package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image,omitempty"`
	Color      string          `json:"color,omitempty"`
	Size       string          `json:"size,omitempty"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	AddedAt    time.Time       `json:"added_at"`
}

// Key identifies a cart line. Two items with the same key are the same line.
func (i CartItem) Key() string {
	return i.ProductID + "|" + i.Color + "|" + i.Size
}

type CartTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

type Cart struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Items     []CartItem `json:"items"`
	PromoCode string     `json:"promo_code,omitempty"`
	Totals    CartTotals `json:"totals"`
	ItemCount int        `json:"item_count"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}

// ProductIDs returns the distinct product ids in cart order.
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	ids := make([]string, 0, len(c.Items))

	for _, item := range c.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Color     string `json:"color,omitempty" validate:"omitempty,max=50"`
	Size      string `json:"size,omitempty" validate:"omitempty,max=20"`
}

type UpdateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

type RemoveItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}

type ApplyPromoRequest struct {
	Code string `json:"code" validate:"required,alphanum,max=32"`
}
