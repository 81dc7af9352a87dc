package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListFlashSale(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, p domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
