package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
)

// CartService keeps one line per (customer, product) and recomputes totals
// fresh on every read.
type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	fee      decimal.Decimal
}

func NewCart(carts port.CartRepository, products port.ProductRepository, shippingFee decimal.Decimal) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		fee:      shippingFee,
	}
}

func (s *CartService) AddToCart(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	// Resolve the product first so a bad id fails before any write.
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return fmt.Errorf("products.GetByID: %w", err)
	}

	if _, err := s.carts.AddLine(ctx, actor.CustomerID, productID); err != nil {
		return fmt.Errorf("carts.AddLine: %w", err)
	}

	return nil
}

func (s *CartService) ViewCart(ctx context.Context, actor domain.Actor) (domain.CartView, error) {
	lines, err := s.carts.GetCart(ctx, actor.CustomerID)
	if err != nil {
		return domain.CartView{}, fmt.Errorf("carts.GetCart: %w", err)
	}

	return s.buildView(lines), nil
}

func (s *CartService) IncrementLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	return s.adjustLine(ctx, actor, lineID, +1)
}

func (s *CartService) DecrementLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	return s.adjustLine(ctx, actor, lineID, -1)
}

func (s *CartService) adjustLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID, delta int) (domain.CartMutation, error) {
	line, err := s.carts.AdjustQuantity(ctx, actor.CustomerID, lineID, delta)
	if err != nil {
		return domain.CartMutation{}, fmt.Errorf("carts.AdjustQuantity: %w", err)
	}

	view, err := s.ViewCart(ctx, actor)
	if err != nil {
		return domain.CartMutation{}, err
	}

	return domain.CartMutation{
		Quantity: line.Quantity,
		Amount:   view.Amount,
		Total:    view.Total,
	}, nil
}

func (s *CartService) RemoveLine(ctx context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	priorQuantity, err := s.carts.DeleteLine(ctx, actor.CustomerID, lineID)
	if err != nil {
		return domain.CartMutation{}, fmt.Errorf("carts.DeleteLine: %w", err)
	}

	view, err := s.ViewCart(ctx, actor)
	if err != nil {
		return domain.CartMutation{}, err
	}

	return domain.CartMutation{
		Quantity: priorQuantity,
		Amount:   view.Amount,
		Total:    view.Total,
	}, nil
}

func (s *CartService) buildView(lines []domain.CartViewLine) domain.CartView {
	amount := decimal.Zero
	for _, line := range lines {
		amount = amount.Add(line.Product.CurrentPrice.MulQuantity(line.Quantity).Amount)
	}

	return domain.CartView{
		Lines:  lines,
		Amount: amount,
		Total:  amount.Add(s.fee),
	}
}
