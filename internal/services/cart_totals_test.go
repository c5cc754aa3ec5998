package service_test

import (
	"testing"

	"github.com/aaravmahajanofficial/pawsome-storefront/internal/config"
	"github.com/aaravmahajanofficial/pawsome-storefront/internal/models"
	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(productID, price string, qty int) models.CartItem {
	return models.CartItem{ProductID: productID, Name: productID, UnitPrice: dec(price), Quantity: qty}
}

func TestCalculateTotals(t *testing.T) {
	pricing := testPricing()

	t.Run("Success - Free shipping above threshold", func(t *testing.T) {
		// Act
		totals := service.CalculateTotals([]models.CartItem{line("bed", "129.99", 1)}, "", pricing)

		// Assert
		assert.True(t, dec("129.99").Equal(totals.Subtotal))
		assert.True(t, dec("10.40").Equal(totals.Tax))
		assert.True(t, totals.Shipping.IsZero())
		assert.True(t, dec("140.39").Equal(totals.Total))
		assert.Equal(t, "usd", totals.Currency)
	})

	t.Run("Success - Flat shipping below threshold", func(t *testing.T) {
		totals := service.CalculateTotals([]models.CartItem{line("ball", "10", 2)}, "", pricing)

		assert.True(t, dec("20").Equal(totals.Subtotal))
		assert.True(t, dec("1.60").Equal(totals.Tax))
		assert.True(t, dec("5.99").Equal(totals.Shipping))
		assert.True(t, dec("27.59").Equal(totals.Total))
	})

	t.Run("Success - Threshold itself ships free", func(t *testing.T) {
		totals := service.CalculateTotals([]models.CartItem{line("food", "25", 2)}, "", pricing)

		assert.True(t, totals.Shipping.IsZero())
	})

	t.Run("Success - Empty cart is all zero", func(t *testing.T) {
		totals := service.CalculateTotals(nil, "WOOF10", pricing)

		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.Discount.IsZero())
		assert.True(t, totals.Shipping.IsZero())
		assert.True(t, totals.Total.IsZero())
	})

	t.Run("Success - Promo discounts before tax", func(t *testing.T) {
		totals := service.CalculateTotals([]models.CartItem{line("crate", "100", 1)}, "woof10", pricing)

		assert.True(t, dec("10").Equal(totals.Discount))
		assert.True(t, dec("7.20").Equal(totals.Tax))
		assert.True(t, totals.Shipping.IsZero())
		assert.True(t, dec("97.20").Equal(totals.Total))
	})

	t.Run("Success - Unknown promo is ignored", func(t *testing.T) {
		totals := service.CalculateTotals([]models.CartItem{line("crate", "100", 1)}, "BOGUS", pricing)

		assert.True(t, totals.Discount.IsZero())
	})

	t.Run("Success - Components always add up", func(t *testing.T) {
		carts := [][]models.CartItem{
			{line("a", "0.01", 1)},
			{line("a", "3.33", 3), line("b", "19.99", 2)},
			{line("a", "49.99", 1)},
			{line("a", "12.345", 7), line("b", "0.99", 99)},
		}

		for _, items := range carts {
			for _, promo := range []string{"", "WOOF10", "HALF"} {
				totals := service.CalculateTotals(items, promo, pricing)
				sum := totals.Subtotal.Add(totals.Tax).Add(totals.Shipping).Sub(totals.Discount)

				assert.True(t, sum.Equal(totals.Total), "total %s != %s", totals.Total, sum)
				assert.True(t, totals.Total.Equal(totals.Total.Round(2)))
				assert.True(t, totals.Total.Equal(service.CalculateTotals(items, promo, pricing).Total))
			}
		}
	})
}

func TestRecalculate(t *testing.T) {
	t.Run("Success - Line totals and item count", func(t *testing.T) {
		// Arrange
		cart := &models.Cart{Items: []models.CartItem{line("a", "2.50", 3), line("b", "1", 1)}}

		// Act
		service.Recalculate(cart, testPricing())

		// Assert
		assert.Equal(t, 4, cart.ItemCount)
		assert.True(t, dec("7.50").Equal(cart.Items[0].TotalPrice))
		assert.True(t, dec("8.50").Equal(cart.Totals.Subtotal))
	})

	t.Run("Success - Nil items become empty", func(t *testing.T) {
		cart := &models.Cart{}

		service.Recalculate(cart, testPricing())

		assert.NotNil(t, cart.Items)
		assert.Zero(t, cart.ItemCount)
	})
}

func TestNewPricing(t *testing.T) {
	t.Run("Success - Parses config", func(t *testing.T) {
		pricing, err := service.NewPricing(&config.Pricing{
			Currency:              "USD",
			TaxRate:               "0.1",
			FreeShippingThreshold: "75",
			FlatShippingFee:       "4.50",
			MaxItemQuantity:       10,
			PromoCodes:            map[string]float64{"spring": 15},
		})

		require.NoError(t, err)
		assert.Equal(t, "usd", pricing.Currency)
		assert.True(t, dec("0.1").Equal(pricing.TaxRate))
		assert.Equal(t, 10, pricing.MaxQuantity)

		percent, ok := pricing.PromoPercent(" Spring ")
		assert.True(t, ok)
		assert.True(t, dec("15").Equal(percent))
	})

	t.Run("Failure - Bad decimal", func(t *testing.T) {
		_, err := service.NewPricing(&config.Pricing{TaxRate: "abc", FreeShippingThreshold: "50", FlatShippingFee: "5"})

		assert.ErrorContains(t, err, "invalid tax rate")
	})
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(4210), service.MinorUnits(dec("42.10")))
	assert.Equal(t, int64(14039), service.MinorUnits(dec("140.39")))
	assert.Equal(t, int64(0), service.MinorUnits(dec("0")))
}
