package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	// AddLine upserts the (customer, product) line: a missing line is created
	// with quantity 1, an existing one is incremented by 1.
	AddLine(ctx context.Context, customerID, productID uuid.UUID) (domain.CartLine, error)

	// GetCart returns the customer's lines joined to their products,
	// oldest line first.
	GetCart(ctx context.Context, customerID uuid.UUID) ([]domain.CartViewLine, error)

	// AdjustQuantity adds delta to the line's quantity. The line must belong
	// to the customer and the result must stay >= 1.
	AdjustQuantity(ctx context.Context, customerID, lineID uuid.UUID, delta int) (domain.CartLine, error)

	// DeleteLine removes the line if it belongs to the customer and reports
	// its prior quantity.
	DeleteLine(ctx context.Context, customerID, lineID uuid.UUID) (int, error)

	// Clear removes every line of the customer.
	Clear(ctx context.Context, customerID uuid.UUID) error
}
