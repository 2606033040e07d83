package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Notification job statuses.
const (
	NotificationPending = "PENDING"
	NotificationSent    = "SENT"
	NotificationFailed  = "FAILED"
)

// Notification is an outbox row for an order-confirmation email. It is written
// in the same transaction as the order so a confirmed checkout always has a
// job, and delivered by the background worker on a best-effort basis.
type Notification struct {
	ID        string
	OrderID   string
	Recipient string
	UserName  string
	Payload   []byte // JSON-encoded OrderSummary
	Status    string
	Attempts  int
	NextRunAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderSummary is the payload rendered into the confirmation email.
type OrderSummary struct {
	OrderID     string             `json:"orderId"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	Items       []OrderSummaryItem `json:"items"`
}

// OrderSummaryItem is one line of the confirmation email.
type OrderSummaryItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}
