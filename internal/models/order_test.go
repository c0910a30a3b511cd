package models_test

import (
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "22.00", models.FormatCents(2200))
	assert.Equal(t, "0.00", models.FormatCents(0))
	assert.Equal(t, "0.05", models.FormatCents(5))
	assert.Equal(t, "1.50", models.FormatCents(150))
	assert.Equal(t, "1234.56", models.FormatCents(123456))
}

func TestProductDisplayPrice(t *testing.T) {
	product := models.Product{Title: "Poster", Price: 1200}
	assert.Equal(t, "12.00", product.DisplayPrice())
}

func TestOrderItemTotals(t *testing.T) {
	item := models.OrderItem{
		Product:  models.Product{Price: 500},
		Quantity: 3,
	}
	assert.Equal(t, int64(1500), item.RawTotalPrice())
	assert.Equal(t, "15.00", item.TotalPrice())
}

func TestOrderSubtotal(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Product: models.Product{Price: 500}, Quantity: 2},
			{Product: models.Product{Price: 1200}, Quantity: 1},
		},
	}

	assert.Equal(t, int64(2200), order.RawSubtotal())
	assert.Equal(t, "22.00", order.Subtotal())
}

func TestOrderSubtotalEmpty(t *testing.T) {
	order := models.Order{}
	assert.Equal(t, int64(0), order.RawSubtotal())
	assert.Equal(t, "0.00", order.Subtotal())
}

func TestOrderTax(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Product: models.Product{Price: 500}, Quantity: 2},
			{Product: models.Product{Price: 1200}, Quantity: 1},
		},
	}

	// 0.0725 * 2200 = 159.5, rounded to 160
	assert.Equal(t, int64(160), order.RawTax())
	assert.Equal(t, int64(2360), order.RawTotal())
}

// The displayed total tracks the subtotal, not the tax-inclusive raw total.
func TestOrderTotalMirrorsSubtotal(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Product: models.Product{Price: 500}, Quantity: 2},
			{Product: models.Product{Price: 1200}, Quantity: 1},
		},
	}

	assert.Equal(t, order.Subtotal(), order.Total())
	assert.NotEqual(t, models.FormatCents(order.RawTotal()), order.Total())
}

func TestOrderReferenceNumber(t *testing.T) {
	order := models.Order{ID: 42}
	assert.Equal(t, "ORDER-42", order.ReferenceNumber())
}

func TestPaymentReferenceNumber(t *testing.T) {
	payment := models.Payment{
		ID:            7,
		Order:         models.Order{ID: 3},
		PaymentMethod: models.PaymentMethodPaypal,
		Timestamp:     time.Now(),
		Amount:        2200,
	}
	assert.Equal(t, "PAYMENT-ORDER-3-7", payment.ReferenceNumber())
}
