package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsBusinessRejection(t *testing.T) {
	assert.True(t, IsBusinessRejection(ErrEmptyCart))
	assert.True(t, IsBusinessRejection(fmt.Errorf("add line: %w", ErrUnknownSKU)))
	assert.True(t, IsBusinessRejection(&ValidationError{Field: "quantity", Reason: "must be positive"}))
	assert.True(t, IsBusinessRejection(&InsufficientStockError{SKU: "S1", Requested: 5, Available: 2}))
	assert.True(t, IsBusinessRejection(&InsufficientPaymentError{Total: 1200, Tendered: 1000}))

	// Системные отказы - не бизнес-отклонения
	assert.False(t, IsBusinessRejection(&PersistenceError{Op: "commit sale", Err: errors.New("disk full")}))
	assert.False(t, IsBusinessRejection(errors.New("boom")))
	assert.False(t, IsBusinessRejection(ErrSaleNotFound))
}

func TestPersistenceError_Unwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := &PersistenceError{Op: "commit sale", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "commit sale")
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCash.Valid())
	assert.True(t, PaymentMpesa.Valid())
	assert.True(t, PaymentCard.Valid())
	assert.False(t, PaymentMethod("cheque").Valid())
}
