package service

import (
	"encoding/json"
	"strings"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
)

type storedCart struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Items     []json.RawMessage `json:"items"`
	PromoCode string            `json:"promo_code"`
}

// SanitizeCart rebuilds a cart from stored bytes. Items that do not decode,
// have no product id, a quantity outside [1, MaxQuantity] or a negative
// price are dropped. Lines sharing a (product, color, size) key are merged
// with quantities summed and clamped. Anything unreadable at the top level
// yields an empty cart.
func SanitizeCart(raw []byte, pricing Pricing) *models.Cart {

	cart := &models.Cart{Items: []models.CartItem{}}

	var stored storedCart
	if len(raw) == 0 || json.Unmarshal(raw, &stored) != nil {
		Recalculate(cart, pricing)
		return cart
	}

	cart.ID = stored.ID
	cart.UserID = stored.UserID

	index := make(map[string]int, len(stored.Items))

	for _, rawItem := range stored.Items {
		var item models.CartItem
		if err := json.Unmarshal(rawItem, &item); err != nil {
			continue
		}

		item.ProductID = strings.TrimSpace(item.ProductID)
		if !validStoredItem(item, pricing.MaxQuantity) {
			continue
		}

		if i, ok := index[item.Key()]; ok {
			cart.Items[i].Quantity = min(cart.Items[i].Quantity+item.Quantity, pricing.MaxQuantity)
			continue
		}

		index[item.Key()] = len(cart.Items)
		cart.Items = append(cart.Items, item)
	}

	if _, ok := pricing.PromoPercent(stored.PromoCode); ok {
		cart.PromoCode = strings.ToUpper(strings.TrimSpace(stored.PromoCode))
	}

	Recalculate(cart, pricing)

	return cart
}

func validStoredItem(item models.CartItem, maxQuantity int) bool {
	return item.ProductID != "" &&
		item.Quantity >= 1 &&
		item.Quantity <= maxQuantity &&
		!item.UnitPrice.IsNegative()
}
