package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type CustomerRepository interface {
	// Create inserts the customer. The very first account in the store is
	// given the admin role regardless of the role on the argument.
	Create(ctx context.Context, c domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (domain.Customer, error)
	List(ctx context.Context) ([]domain.Customer, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
