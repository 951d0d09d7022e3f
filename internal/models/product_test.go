package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_NewerThan(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	older := &Product{SKU: "9780141036144", UpdatedAt: base}
	newer := &Product{SKU: "9780141036144", UpdatedAt: base.Add(time.Minute)}

	assert.True(t, newer.NewerThan(older))
	assert.False(t, older.NewerThan(newer))
}

func TestProduct_NewerThan_TieBreaksBySKU(t *testing.T) {
	// При равных UpdatedAt побеждает больший SKU - детерминированно
	// на обеих сторонах сверки
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	a := &Product{SKU: "AAA", UpdatedAt: now}
	b := &Product{SKU: "BBB", UpdatedAt: now}

	assert.True(t, b.NewerThan(a))
	assert.False(t, a.NewerThan(b))
	assert.False(t, a.NewerThan(a))
}

func TestProduct_Validate(t *testing.T) {
	valid := Product{SKU: "9780141036144", Title: "1984", Price: 50000, Cost: 30000, Stock: 3}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Product)
		field  string
	}{
		{"empty sku", func(p *Product) { p.SKU = "" }, "sku"},
		{"empty title", func(p *Product) { p.Title = "" }, "title"},
		{"negative price", func(p *Product) { p.Price = -1 }, "price"},
		{"negative cost", func(p *Product) { p.Cost = -1 }, "cost"},
		{"negative stock", func(p *Product) { p.Stock = -1 }, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)

			err := p.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestProduct_Clone(t *testing.T) {
	p := &Product{SKU: "S1", Title: "Pens", Stock: 10}

	clone := p.Clone()
	clone.Stock = 5

	assert.Equal(t, 10, p.Stock)
}
