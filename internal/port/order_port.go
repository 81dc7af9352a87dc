package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	// PlaceOrders inserts all orders and clears the customer's cart in a
	// single transaction; on any failure nothing is applied.
	PlaceOrders(ctx context.Context, customerID uuid.UUID, orders []domain.Order) error

	GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}
