// Package cart реализует движок корзины: построение неподтверждённого
// заказа из позиций каталога, скидку и расчёт итогов. Движок чистый:
// никакого I/O кроме чтений каталога, никаких записей.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/iudanet/bookpos/internal/models"
	"github.com/iudanet/bookpos/internal/pos/storage"
)

// Totals содержит расчётные итоги корзины.
// Инварианты: total = subtotal - discount; profit считается от total,
// то есть от фактически собранной выручки после скидки.
type Totals struct {
	Subtotal int64
	Discount int64
	Total    int64
	Profit   int64
}

// Cart представляет корзину одной сессии кассы.
// Корзина принадлежит ровно одной сессии; мьютекс защищает только
// от конкурентных вызовов внутри этой сессии (UI-перерисовки и т.п.).
// Никакого process-wide состояния: каждая вкладка создает свою корзину.
type Cart struct {
	catalog  storage.CatalogStore
	index    map[string]int
	id       string
	lines    []models.SaleLine
	discount int64
	mu       sync.Mutex
}

// New создает пустую корзину для новой сессии
func New(catalog storage.CatalogStore) *Cart {
	return &Cart{
		catalog: catalog,
		id:      uuid.New().String(),
		index:   make(map[string]int),
	}
}

// ID возвращает идентификатор сессии корзины (для логов)
func (c *Cart) ID() string {
	return c.id
}

// AddLine добавляет товар в корзину или увеличивает количество
// существующей строки. Цена и закупка снимаются в момент первого
// добавления: последующие правки каталога не меняют открытую корзину.
// Проверка остатка здесь оптимистичная; авторитетная выполняется
// при фиксации продажи.
func (c *Cart) AddLine(ctx context.Context, sku string, quantity int) error {
	if quantity < 1 {
		return &models.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	product, err := c.catalog.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%w: %s", models.ErrUnknownSKU, sku)
		}
		return fmt.Errorf("catalog lookup failed: %w", err)
	}
	if product.Deleted {
		return fmt.Errorf("%w: %s", models.ErrUnknownSKU, sku)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := 0
	if i, ok := c.index[sku]; ok {
		existing = c.lines[i].Quantity
	}

	if existing+quantity > product.Stock {
		return &models.InsufficientStockError{
			SKU:       sku,
			Requested: existing + quantity,
			Available: product.Stock,
		}
	}

	if i, ok := c.index[sku]; ok {
		// Строка уже есть - увеличиваем количество, снимки не трогаем
		c.lines[i].Quantity += quantity
		return nil
	}

	c.index[sku] = len(c.lines)
	c.lines = append(c.lines, models.SaleLine{
		SKU:       sku,
		Title:     product.Title,
		Quantity:  quantity,
		UnitPrice: product.Price,
		UnitCost:  product.Cost,
	})

	return nil
}

// SetQuantity устанавливает количество существующей строки.
// Действует то же правило остатка, что и в AddLine.
func (c *Cart) SetQuantity(ctx context.Context, sku string, quantity int) error {
	if quantity < 1 {
		return &models.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	product, err := c.catalog.GetProduct(ctx, sku)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%w: %s", models.ErrUnknownSKU, sku)
		}
		return fmt.Errorf("catalog lookup failed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[sku]
	if !ok {
		return fmt.Errorf("%w: %s is not in the cart", models.ErrUnknownSKU, sku)
	}

	if quantity > product.Stock {
		return &models.InsufficientStockError{
			SKU:       sku,
			Requested: quantity,
			Available: product.Stock,
		}
	}

	c.lines[i].Quantity = quantity
	c.resetStaleDiscountLocked()
	return nil
}

// RemoveLine удаляет строку из корзины
func (c *Cart) RemoveLine(sku string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[sku]
	if !ok {
		return fmt.Errorf("%w: %s is not in the cart", models.ErrUnknownSKU, sku)
	}

	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, sku)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].SKU] = j
	}

	c.resetStaleDiscountLocked()
	return nil
}

// resetStaleDiscountLocked сбрасывает скидку, если после уменьшения
// корзины она перестала удовлетворять правилу discount < subtotal.
// Кассир применяет скидку заново к новой сумме; вызывается под мьютексом.
func (c *Cart) resetStaleDiscountLocked() {
	if c.discount > 0 && c.discount >= c.subtotalLocked() {
		c.discount = 0
	}
}

// ApplyDiscount устанавливает скидку на корзину.
// Скидка заменяет предыдущее значение, а не складывается с ним.
// При отклонении предыдущая скидка остается в силе.
func (c *Cart) ApplyDiscount(amount int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount < 0 {
		return &models.ValidationError{Field: "discount", Reason: "must not be negative"}
	}
	if amount >= c.subtotalLocked() {
		return &models.ValidationError{Field: "discount", Reason: "must be less than subtotal"}
	}

	c.discount = amount
	return nil
}

// Totals возвращает расчётные итоги корзины.
// Чистая функция без побочных эффектов, безопасна для повторных
// вызовов при перерисовке UI.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	subtotal := c.subtotalLocked()
	total := subtotal - c.discount

	var cost int64
	for _, line := range c.lines {
		cost += line.LineCost()
	}

	return Totals{
		Subtotal: subtotal,
		Discount: c.discount,
		Total:    total,
		Profit:   total - cost,
	}
}

// Lines возвращает снимок строк корзины в порядке добавления
func (c *Cart) Lines() []models.SaleLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]models.SaleLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len возвращает количество строк в корзине
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Clear очищает корзину и сбрасывает скидку. Каталог не затрагивается.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.index = make(map[string]int)
	c.discount = 0
}

// subtotalLocked считает сумму строк; вызывается под мьютексом
func (c *Cart) subtotalLocked() int64 {
	var subtotal int64
	for _, line := range c.lines {
		subtotal += line.LineTotal()
	}
	return subtotal
}
