package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/bookpos/internal/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "KES 12.00", FormatMoney("KES", 1200))
	assert.Equal(t, "KES 0.05", FormatMoney("KES", 5))
	assert.Equal(t, "KES 0.00", FormatMoney("KES", 0))
	assert.Equal(t, "-KES 3.50", FormatMoney("KES", -350))
}

func TestRender(t *testing.T) {
	renderer, err := NewRenderer("Karatina Books", "KES")
	require.NoError(t, err)

	sale := &models.Sale{
		ID:        7,
		Timestamp: time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
		Cashier:   "wanjiku",
		Lines: []models.SaleLine{
			{SKU: "9780141036144", Title: "1984", Quantity: 2, UnitPrice: 500, UnitCost: 200},
			{SKU: "NB", Title: "Notebook", Quantity: 1, UnitPrice: 300, UnitCost: 100},
		},
		PaymentMethod: models.PaymentCash,
		Discount:      100,
		Subtotal:      1300,
		Total:         1200,
		Tendered:      1500,
		Change:        300,
	}

	text, err := renderer.Render(sale)
	require.NoError(t, err)

	assert.Contains(t, text, "Karatina Books")
	assert.Contains(t, text, "Sale:    #7")
	assert.Contains(t, text, "Cashier: wanjiku")
	assert.Contains(t, text, "1984")
	assert.Contains(t, text, "x2")
	assert.Contains(t, text, "Subtotal: KES 13.00")
	assert.Contains(t, text, "Discount: -KES 1.00")
	assert.Contains(t, text, "TOTAL:    KES 12.00")
	assert.Contains(t, text, "Paid:     KES 15.00 (cash)")
	assert.Contains(t, text, "Change:   KES 3.00")

	// Прибыль и закупочные цены на чек не попадают
	assert.NotContains(t, text, "rofit")
	assert.NotContains(t, text, "KES 2.00")
}

func TestRender_NoDiscountLine(t *testing.T) {
	renderer, err := NewRenderer("Shop", "KES")
	require.NoError(t, err)

	sale := &models.Sale{
		ID:        1,
		Timestamp: time.Now(),
		Lines: []models.SaleLine{
			{SKU: "PEN", Title: "Pen", Quantity: 1, UnitPrice: 500},
		},
		PaymentMethod: models.PaymentCard,
		Subtotal:      500,
		Total:         500,
		Tendered:      500,
	}

	text, err := renderer.Render(sale)
	require.NoError(t, err)
	assert.NotContains(t, text, "Discount")
}
