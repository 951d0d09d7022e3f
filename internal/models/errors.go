package models

import (
	"errors"
	"fmt"
)

// Бизнес-ошибки ядра. Разделены на три класса (см. ValidationError,
// InsufficientStockError, InsufficientPaymentError) и системный класс
// PersistenceError, чтобы вызывающий код мог отличить "исправьте ввод"
// от "касса неработоспособна".
var (
	// ErrEmptyCart indicates commit was attempted on a cart without lines
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownSKU indicates the product does not exist in the catalog
	ErrUnknownSKU = errors.New("unknown sku")

	// ErrSaleNotFound indicates the sale id is absent from the sale store
	ErrSaleNotFound = errors.New("sale not found")

	// ErrPermissionDenied indicates the principal's role lacks the capability
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError описывает отклонённый ввод (количество, скидка и т.п.).
// Состояние корзины при этом не меняется, кассир исправляет ввод и повторяет.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError возникает при нехватке остатка по конкретному SKU.
// На этапе добавления в корзину проверка оптимистичная, на этапе фиксации -
// авторитетная: отказ фиксации откатывает всю транзакцию целиком.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.SKU, e.Requested, e.Available)
}

// InsufficientPaymentError возникает, когда внесённая сумма меньше итога.
// Отклоняется до какой-либо записи в хранилище.
type InsufficientPaymentError struct {
	Total    int64
	Tendered int64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: tendered %d, total %d", e.Tendered, e.Total)
}

// PersistenceError описывает отказ локального хранилища во время фиксации.
// Это более серьёзный класс, чем бизнес-отклонение: попытка прервана,
// частичной записи нет, но касса может быть неработоспособна.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsBusinessRejection возвращает true для ошибок, которые кассир может
// исправить повторным вводом (в отличие от системных отказов хранилища).
func IsBusinessRejection(err error) bool {
	var (
		validation *ValidationError
		stock      *InsufficientStockError
		payment    *InsufficientPaymentError
	)
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrUnknownSKU) ||
		errors.As(err, &validation) ||
		errors.As(err, &stock) ||
		errors.As(err, &payment)
}
