package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrCartLineNotFound   = errors.New("cart item not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("access denied")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrStore              = errors.New("store error")
)

// InsufficientStockError reports a stock-availability rejection together with
// the quantity still available, so callers can surface it without parsing strings.
// Matches ErrInsufficientStock via errors.Is.
type InsufficientStockError struct {
	ProductID string
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, available: %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// NewInsufficientStock builds the structured stock rejection for a product.
func NewInsufficientStock(productID string, available int) error {
	return &InsufficientStockError{ProductID: productID, Available: available}
}

// StoreError wraps a persistence failure so handlers can map it to a retryable
// response while keeping the cause for logs. Matches ErrStore via errors.Is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
