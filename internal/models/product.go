package models

import "time"

// Product представляет товар в каталоге магазина.
// Каталог является локальным источником истины для остатков:
// поле Stock изменяется только внутри транзакции продажи
// или при сверке с удалённым реестром.
type Product struct {
	CreatedAt time.Time `json:"created_at"` // CreatedAt время добавления товара в каталог
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время последнего изменения (для LWW-сверки)
	SKU       string    `json:"sku"`        // SKU уникальный идентификатор товара (ISBN для книг)
	Title     string    `json:"title"`      // Title название товара
	Author    string    `json:"author"`     // Author автор или поставщик
	Category  string    `json:"category"`   // Category категория товара
	ItemType  string    `json:"item_type"`  // ItemType тип позиции: "book", "stationery", "other"
	Price     int64     `json:"price"`      // Price цена продажи в минимальных единицах валюты (>= 0)
	Cost      int64     `json:"cost"`       // Cost закупочная цена (>= 0, 0 если неизвестна)
	Stock     int       `json:"stock"`      // Stock остаток на складе (>= 0)
	Deleted   bool      `json:"deleted"`    // Deleted флаг soft delete (запись хранится для сверки)
}

// ItemType константы для типов позиций
const (
	ItemTypeBook       = "book"
	ItemTypeStationery = "stationery"
	ItemTypeOther      = "other"
)

// NewerThan сравнивает две версии товара и определяет, какая из них новее.
// Согласно политике LWW (Last-Write-Wins):
// 1. Сначала сравнивается UpdatedAt (более позднее время выигрывает)
// 2. При равных UpdatedAt сравнивается SKU (лексикографически, для детерминизма)
// Возвращает true, если текущая версия новее, чем other.
func (p *Product) NewerThan(other *Product) bool {
	if p.UpdatedAt.After(other.UpdatedAt) {
		return true
	}
	if p.UpdatedAt.Before(other.UpdatedAt) {
		return false
	}
	return p.SKU > other.SKU
}

// Clone создает глубокую копию товара
func (p *Product) Clone() *Product {
	clone := *p
	return &clone
}

// Validate проверяет корректность полей товара при конструировании.
// Возвращает ErrInvalidProduct с описанием первого нарушенного правила.
func (p *Product) Validate() error {
	switch {
	case p.SKU == "":
		return &ValidationError{Field: "sku", Reason: "must not be empty"}
	case p.Title == "":
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	case p.Price < 0:
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	case p.Cost < 0:
		return &ValidationError{Field: "cost", Reason: "must not be negative"}
	case p.Stock < 0:
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}
