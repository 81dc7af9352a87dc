package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// noDescriptionPlaceholder is shown on the provider's hosted page for
// products without a description.
const noDescriptionPlaceholder = "NO Description Available"

// CheckoutService drives a cart through the hosted payment flow:
// cart -> provider session -> (external payment) -> orders written, cart
// cleared. An abandoned session simply leaves the cart untouched.
type CheckoutService struct {
	carts         port.CartRepository
	products      port.ProductRepository
	orders        port.OrderRepository
	provider      port.PaymentProvider
	publicBaseURL string
}

func NewCheckout(
	carts port.CartRepository,
	products port.ProductRepository,
	orders port.OrderRepository,
	provider port.PaymentProvider,
	publicBaseURL string,
) *CheckoutService {
	return &CheckoutService{
		carts:         carts,
		products:      products,
		orders:        orders,
		provider:      provider,
		publicBaseURL: publicBaseURL,
	}
}

// InitiateCheckout builds one line item per cart line and returns the
// provider-hosted page to redirect to. Any missing product aborts the whole
// attempt before a session is created.
func (s *CheckoutService) InitiateCheckout(ctx context.Context, actor domain.Actor) (string, error) {
	lines, err := s.carts.GetCart(ctx, actor.CustomerID)
	if err != nil {
		return "", fmt.Errorf("carts.GetCart: %w", err)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("cart is empty: %w", domain.ErrInvalidState)
	}

	items := make([]port.LineItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return "", fmt.Errorf("products.GetByID: %w", err)
		}

		description := product.Description
		if description == "" {
			description = noDescriptionPlaceholder
		}

		items = append(items, port.LineItem{
			Name:        product.Name,
			Description: description,
			UnitAmount:  product.CurrentPrice.MinorUnits(),
			Quantity:    line.Quantity,
			Currency:    product.CurrentPrice.Currency,
		})
	}

	session, err := s.provider.CreateSession(ctx, port.CheckoutSessionRequest{
		LineItems:  items,
		SuccessURL: s.publicBaseURL + "/payment-success?session_id=" + port.SessionTokenPlaceholder,
		CancelURL:  s.publicBaseURL + "/cart",
	})
	if err != nil {
		return "", fmt.Errorf("provider.CreateSession: %w", errors.Join(domain.ErrProviderFailure, err))
	}

	return session.URL, nil
}

// CompleteCheckout handles the success callback: it snapshots every cart
// line into an order and clears the cart, all in one transaction. A callback
// without a session id is an explicit provider failure, never a silent
// success.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, actor domain.Actor, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("missing session id: %w", domain.ErrProviderFailure)
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("provider.GetSession: %w", errors.Join(domain.ErrProviderFailure, err))
	}

	intent, err := s.provider.GetPaymentIntent(ctx, session.PaymentIntentID)
	if err != nil {
		return fmt.Errorf("provider.GetPaymentIntent: %w", errors.Join(domain.ErrProviderFailure, err))
	}

	lines, err := s.carts.GetCart(ctx, actor.CustomerID)
	if err != nil {
		return fmt.Errorf("carts.GetCart: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	orders := make([]domain.Order, 0, len(lines))
	for _, line := range lines {
		orders = append(orders, domain.Order{
			CustomerID: actor.CustomerID,
			ProductID:  line.ProductID,
			Price:      line.Product.CurrentPrice.MulQuantity(line.Quantity),
			PaymentID:  intent.ID,
			Quantity:   line.Quantity,
			Status:     domain.StatusPaid,
		})
	}

	if err := s.orders.PlaceOrders(ctx, actor.CustomerID, orders); err != nil {
		return fmt.Errorf("orders.PlaceOrders: %w", err)
	}

	return nil
}
