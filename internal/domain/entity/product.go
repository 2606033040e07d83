package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. StockQuantity is the authoritative stock counter
// and is only ever mutated through the cart reservation paths; it never goes
// negative.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // unit sale price
	StockQuantity int
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
