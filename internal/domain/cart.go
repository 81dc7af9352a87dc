package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one (customer, product) row. The schema guarantees at most one
// line per pair and a quantity of at least 1; reaching zero means removal.
type CartLine struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Quantity   int

	CreatedAt time.Time
}

type CartViewLine struct {
	CartLine
	Product Product
}

// CartView is the customer's cart joined to current product data, with
// totals recomputed fresh on every read.
type CartView struct {
	Lines  []CartViewLine
	Amount decimal.Decimal
	Total  decimal.Decimal
}

// CartMutation is what the cart line endpoints return after a +/-/remove:
// the affected line's quantity plus the recomputed totals for the whole cart.
type CartMutation struct {
	Quantity int
	Amount   decimal.Decimal
	Total    decimal.Decimal
}
