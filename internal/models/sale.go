package models

import "time"

// PaymentMethod способ оплаты продажи
type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentMpesa PaymentMethod = "mpesa"
	PaymentCard  PaymentMethod = "card"
)

// Valid сообщает, является ли значение известным способом оплаты
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMpesa, PaymentCard:
		return true
	default:
		return false
	}
}

// SyncStatus статус репликации продажи в удалённый реестр
type SyncStatus string

const (
	SyncStatusPending SyncStatus = "pending" // ожидает отправки
	SyncStatusSynced  SyncStatus = "synced"  // подтверждена удалённым реестром
	SyncStatusFailed  SyncStatus = "failed"  // исчерпаны попытки доставки (операционный backlog, не потеря продажи)
)

// SaleLine представляет одну строку зафиксированной продажи.
// Это снимок значений на момент добавления в корзину, а не ссылка
// на товар: последующие правки цены не меняют закрытую продажу.
type SaleLine struct {
	SKU       string `json:"sku"`        // SKU идентификатор товара
	Title     string `json:"title"`      // Title снимок названия
	Quantity  int    `json:"quantity"`   // Quantity количество (>= 1)
	UnitPrice int64  `json:"unit_price"` // UnitPrice снимок цены продажи
	UnitCost  int64  `json:"unit_cost"`  // UnitCost снимок закупочной цены
}

// LineTotal возвращает сумму строки по цене продажи
func (l SaleLine) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// LineCost возвращает сумму строки по закупочной цене
func (l SaleLine) LineCost() int64 {
	return l.UnitCost * int64(l.Quantity)
}

// Sale представляет зафиксированную продажу.
// Запись неизменяема после создания; единственные разрешённые изменения:
// переходы SyncStatus и полное сторнирование (reverse) с восстановлением остатков.
type Sale struct {
	Timestamp     time.Time     `json:"timestamp"`      // Timestamp время фиксации продажи
	Lines         []SaleLine    `json:"lines"`          // Lines строки продажи в порядке добавления
	PaymentMethod PaymentMethod `json:"payment_method"` // PaymentMethod способ оплаты
	Cashier       string        `json:"cashier"`        // Cashier имя кассира, оформившего продажу
	SyncStatus    SyncStatus    `json:"sync_status"`    // SyncStatus статус репликации
	ID            int64         `json:"id"`             // ID локальный последовательный идентификатор
	Discount      int64         `json:"discount"`       // Discount сумма скидки (0 <= discount < subtotal)
	Subtotal      int64         `json:"subtotal"`       // Subtotal сумма строк до скидки
	Total         int64         `json:"total"`          // Total итог к оплате (subtotal - discount)
	Profit        int64         `json:"profit"`         // Profit прибыль, считается от итога после скидки
	Tendered      int64         `json:"tendered"`       // Tendered сумма, внесённая покупателем
	Change        int64         `json:"change"`         // Change сдача (tendered - total)
}

// Clone создает глубокую копию продажи
func (s *Sale) Clone() *Sale {
	clone := *s
	clone.Lines = make([]SaleLine, len(s.Lines))
	copy(clone.Lines, s.Lines)
	return &clone
}
