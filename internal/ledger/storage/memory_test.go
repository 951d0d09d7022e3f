package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Sales(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetSale(ctx, "1")
	assert.ErrorIs(t, err, ErrSaleNotFound)

	require.NoError(t, store.PutSale(ctx, "1", json.RawMessage(`{"total": 1200}`)))

	doc, err := store.GetSale(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 1200}`, string(doc))

	// PUT перезаписывает документ целиком
	require.NoError(t, store.PutSale(ctx, "1", json.RawMessage(`{"total": 900}`)))
	doc, err = store.GetSale(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 900}`, string(doc))
}

func TestMemoryStore_PatchProduct_MergesFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.PutProduct(ctx, "PEN",
		json.RawMessage(`{"title": "Pen", "price": 500, "stock": 10}`)))

	require.NoError(t, store.PatchProduct(ctx, "PEN", map[string]any{"stock": 8}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)

	// Патч мержит поля, не затирая остальные
	assert.JSONEq(t, `{"title": "Pen", "price": 500, "stock": 8}`, string(products["PEN"]))
}

func TestMemoryStore_PatchProduct_CreatesAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// stock-changed может приехать раньше product-upserted
	require.NoError(t, store.PatchProduct(ctx, "PEN", map[string]any{"stock": 3}))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"stock": 3}`, string(products["PEN"]))
}

func TestMemoryStore_DeleteProduct_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.PutProduct(ctx, "PEN", json.RawMessage(`{"title": "Pen"}`)))
	require.NoError(t, store.DeleteProduct(ctx, "PEN"))
	require.NoError(t, store.DeleteProduct(ctx, "PEN"))

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryStore_DailySummary(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.GetDailySummary(ctx, "2026-03-01")
	assert.ErrorIs(t, err, ErrSummaryNotFound)

	require.NoError(t, store.PutDailySummary(ctx, "2026-03-01",
		json.RawMessage(`{"total_sales": 5000}`)))

	doc, err := store.GetDailySummary(ctx, "2026-03-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_sales": 5000}`, string(doc))
}

func TestMemoryStore_CopiesDocuments(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	doc := json.RawMessage(`{"total": 1200}`)
	require.NoError(t, store.PutSale(ctx, "1", doc))

	// Мутация исходного буфера не должна портить хранилище
	doc[10] = '9'

	got, err := store.GetSale(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 1200}`, string(got))
}
