package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product+quantity entry in a user's cart. At most one line
// exists per (user, product) pair; a repeated add merges into it.
// ProductName is snapshotted when the line is created; Total is always
// quantity times the product's current unit price.
type CartLine struct {
	ID          string
	UserID      string
	ProductID   string
	ProductName string
	Quantity    int
	Total       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
