package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/media"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type ProductInput struct {
	Name          string
	Description   string
	CurrentPrice  decimal.Decimal
	PreviousPrice decimal.Decimal
	InStock       int
	FlashSale     bool
}

type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CatalogService is the admin-side CRUD over products plus the image asset
// association; the storefront only reads from it.
type CatalogService struct {
	products port.ProductRepository
	media    *media.Store
}

func NewCatalog(products port.ProductRepository, media *media.Store) *CatalogService {
	return &CatalogService{
		products: products,
		media:    media,
	}
}

func (s *CatalogService) Create(ctx context.Context, in ProductInput, image *ImageUpload) (domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return domain.Product{}, err
	}
	if image == nil {
		return domain.Product{}, fmt.Errorf("product picture is required: %w", domain.ErrInvalidArgument)
	}

	picturePath, err := s.media.Save(image.Filename, image.Reader)
	if err != nil {
		return domain.Product{}, fmt.Errorf("media.Save: %w", err)
	}

	created, err := s.products.Create(ctx, domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		CurrentPrice:  domain.Money{Amount: in.CurrentPrice, Currency: currency.USD},
		PreviousPrice: domain.Money{Amount: in.PreviousPrice, Currency: currency.USD},
		PicturePath:   picturePath,
		InStock:       in.InStock,
		FlashSale:     in.FlashSale,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.Create: %w", err)
	}

	return created, nil
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetByID: %w", err)
	}
	return p, nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.List: %w", err)
	}
	return products, nil
}

func (s *CatalogService) ListFlashSale(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.ListFlashSale(ctx)
	if err != nil {
		return nil, fmt.Errorf("products.ListFlashSale: %w", err)
	}
	return products, nil
}

// Update overwrites all product fields; the image is replaced only when a
// new asset is supplied.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, in ProductInput, image *ImageUpload) (domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return domain.Product{}, err
	}

	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetByID: %w", err)
	}

	picturePath := existing.PicturePath
	if image != nil {
		picturePath, err = s.media.Save(image.Filename, image.Reader)
		if err != nil {
			return domain.Product{}, fmt.Errorf("media.Save: %w", err)
		}
	}

	updated := domain.Product{
		ID:            id,
		Name:          in.Name,
		Description:   in.Description,
		CurrentPrice:  domain.Money{Amount: in.CurrentPrice, Currency: currency.USD},
		PreviousPrice: domain.Money{Amount: in.PreviousPrice, Currency: currency.USD},
		PicturePath:   picturePath,
		InStock:       in.InStock,
		FlashSale:     in.FlashSale,
		CreatedAt:     existing.CreatedAt,
	}

	if err := s.products.Update(ctx, updated); err != nil {
		return domain.Product{}, fmt.Errorf("products.Update: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("products.Delete: %w", err)
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if in.Name == "" {
		return fmt.Errorf("product name is required: %w", domain.ErrInvalidArgument)
	}
	if in.CurrentPrice.IsNegative() || in.PreviousPrice.IsNegative() {
		return fmt.Errorf("price cannot be negative: %w", domain.ErrInvalidArgument)
	}
	if in.InStock < 0 {
		return fmt.Errorf("stock cannot be negative: %w", domain.ErrInvalidArgument)
	}
	return nil
}
