package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Orders are written once at checkout and never mutated here.
const (
	OrderStatusConfirmed = "CONFIRMED"
)

// Order is the immutable purchase record created from a cart at checkout.
// TotalAmount equals the sum of its lines' LineTotal.
type Order struct {
	ID          string
	UserID      string
	TotalAmount decimal.Decimal
	Status      string
	Lines       []OrderLine
	CreatedAt   time.Time
}

// OrderLine is a snapshot of one cart line at the moment of checkout.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}
