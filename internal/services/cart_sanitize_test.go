package service_test

import (
	"testing"

	service "github.com/aaravmahajanofficial/pawsome-storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCart(t *testing.T) {
	pricing := testPricing()

	t.Run("Success - Drops invalid items", func(t *testing.T) {
		// Arrange
		raw := []byte(`{"items":[
			{"product_id":"good","name":"Rope toy","quantity":2,"unit_price":"4.50"},
			{"product_id":"","quantity":1,"unit_price":"1"},
			{"product_id":"   ","quantity":1,"unit_price":"1"},
			{"product_id":"zero","quantity":0,"unit_price":"1"},
			{"product_id":"negqty","quantity":-3,"unit_price":"1"},
			{"product_id":"huge","quantity":100,"unit_price":"1"},
			{"product_id":"negprice","quantity":1,"unit_price":"-2"},
			{"product_id":"garbled","quantity":"lots"},
			42
		]}`)

		// Act
		cart := service.SanitizeCart(raw, pricing)

		// Assert
		require.Len(t, cart.Items, 1)
		assert.Equal(t, "good", cart.Items[0].ProductID)
		assert.Equal(t, 2, cart.ItemCount)
		assert.True(t, dec("9").Equal(cart.Totals.Subtotal))
	})

	t.Run("Success - Coalesces duplicate lines", func(t *testing.T) {
		raw := []byte(`{"items":[
			{"product_id":"harness","color":"red","size":"M","quantity":2,"unit_price":"20"},
			{"product_id":"harness","color":"red","size":"M","quantity":3,"unit_price":"20"},
			{"product_id":"harness","color":"blue","size":"M","quantity":1,"unit_price":"20"},
			{"product_id":"kibble","quantity":60,"unit_price":"1"},
			{"product_id":"kibble","quantity":60,"unit_price":"1"}
		]}`)

		cart := service.SanitizeCart(raw, pricing)

		require.Len(t, cart.Items, 3)
		assert.Equal(t, 5, cart.Items[0].Quantity)
		assert.Equal(t, "blue", cart.Items[1].Color)
		assert.Equal(t, pricing.MaxQuantity, cart.Items[2].Quantity)
	})

	t.Run("Success - Totals are recomputed", func(t *testing.T) {
		raw := []byte(`{"items":[{"product_id":"bed","quantity":1,"unit_price":"129.99"}],
			"totals":{"subtotal":"1","total":"999"}}`)

		cart := service.SanitizeCart(raw, pricing)

		assert.True(t, dec("140.39").Equal(cart.Totals.Total))
	})

	t.Run("Success - Keeps known promo only", func(t *testing.T) {
		known := service.SanitizeCart([]byte(`{"items":[],"promo_code":"woof10"}`), pricing)
		unknown := service.SanitizeCart([]byte(`{"items":[],"promo_code":"FREESTUFF"}`), pricing)

		assert.Equal(t, "WOOF10", known.PromoCode)
		assert.Empty(t, unknown.PromoCode)
	})

	t.Run("Success - Unreadable data yields empty cart", func(t *testing.T) {
		inputs := []string{"", "not json", "[]", `{"items":"x"}`, "null", `{"items":null}`, `{"items":[`}

		for _, input := range inputs {
			assert.NotPanics(t, func() {
				cart := service.SanitizeCart([]byte(input), pricing)

				require.NotNil(t, cart)
				assert.Empty(t, cart.Items, "input %q", input)
				assert.NotNil(t, cart.Items)
				assert.True(t, cart.Totals.Total.IsZero())
			})
		}
	})

	t.Run("Success - Sanitizing twice is stable", func(t *testing.T) {
		raw := []byte(`{"items":[
			{"product_id":"a","quantity":2,"unit_price":"3.10"},
			{"product_id":"a","quantity":1,"unit_price":"3.10"}
		],"promo_code":"HALF"}`)

		first := service.SanitizeCart(raw, pricing)
		again := service.SanitizeCart(mustJSON(t, first), pricing)

		assert.Equal(t, first.Items[0].Quantity, again.Items[0].Quantity)
		assert.True(t, first.Totals.Total.Equal(again.Totals.Total))
		assert.Equal(t, first.PromoCode, again.PromoCode)
	})
}
