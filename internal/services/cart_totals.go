package service

import (
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Pricing holds the parsed cart business rules.
type Pricing struct {
	Currency              string
	TaxRate               decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	MaxQuantity           int
	PromoCodes            map[string]decimal.Decimal // percent off, keyed by upper-case code
}

func DefaultPricing() Pricing {
	return Pricing{
		Currency:              "usd",
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.RequireFromString("50"),
		FlatShippingFee:       decimal.RequireFromString("5.99"),
		MaxQuantity:           99,
		PromoCodes:            map[string]decimal.Decimal{},
	}
}

func NewPricing(cfg *config.Pricing) (Pricing, error) {

	pricing := Pricing{
		Currency:    strings.ToLower(cfg.Currency),
		MaxQuantity: cfg.MaxItemQuantity,
		PromoCodes:  make(map[string]decimal.Decimal, len(cfg.PromoCodes)),
	}

	var err error
	if pricing.TaxRate, err = decimal.NewFromString(cfg.TaxRate); err != nil {
		return Pricing{}, fmt.Errorf("invalid tax rate: %w", err)
	}
	if pricing.FreeShippingThreshold, err = decimal.NewFromString(cfg.FreeShippingThreshold); err != nil {
		return Pricing{}, fmt.Errorf("invalid free shipping threshold: %w", err)
	}
	if pricing.FlatShippingFee, err = decimal.NewFromString(cfg.FlatShippingFee); err != nil {
		return Pricing{}, fmt.Errorf("invalid flat shipping fee: %w", err)
	}

	for code, percent := range cfg.PromoCodes {
		pricing.PromoCodes[strings.ToUpper(code)] = decimal.NewFromFloat(percent)
	}

	return pricing, nil
}

// PromoPercent reports the discount for a code, matched case-insensitively.
func (p Pricing) PromoPercent(code string) (decimal.Decimal, bool) {
	percent, ok := p.PromoCodes[strings.ToUpper(strings.TrimSpace(code))]

	return percent, ok
}

// CalculateTotals is a pure function of the items, the promo code and the
// pricing rules. Every component is rounded to cents before the total is
// summed, so Total == Subtotal + Tax + Shipping - Discount holds exactly.
func CalculateTotals(items []models.CartItem, promoCode string, pricing Pricing) models.CartTotals {

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	subtotal = subtotal.Round(2)

	discount := decimal.Zero
	if percent, ok := pricing.PromoPercent(promoCode); ok && promoCode != "" {
		discount = subtotal.Mul(percent).Div(hundred).Round(2)
	}

	tax := subtotal.Sub(discount).Mul(pricing.TaxRate).Round(2)

	shipping := decimal.Zero
	if len(items) > 0 && subtotal.LessThan(pricing.FreeShippingThreshold) {
		shipping = pricing.FlatShippingFee.Round(2)
	}

	return models.CartTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal.Add(tax).Add(shipping).Sub(discount),
		Currency: pricing.Currency,
	}
}

// Recalculate refreshes every derived field of the cart.
func Recalculate(cart *models.Cart, pricing Pricing) {

	count := 0
	for i := range cart.Items {
		item := &cart.Items[i]
		item.TotalPrice = item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		count += item.Quantity
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	cart.ItemCount = count
	cart.Totals = CalculateTotals(cart.Items, cart.PromoCode, pricing)
}

// MinorUnits converts an amount to the smallest currency unit.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}
