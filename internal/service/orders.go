package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type OrderService struct {
	orders port.OrderRepository
}

func NewOrders(orders port.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, actor.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListByCustomer: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListAll: %w", err)
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetByID: %w", err)
	}
	return order, nil
}

// UpdateStatus accepts only the statuses the admin order form offers; an
// unknown value leaves the order untouched.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	parsed, err := domain.ParseOrderStatus(status)
	if err != nil {
		return err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, parsed); err != nil {
		return fmt.Errorf("orders.UpdateStatus: %w", err)
	}

	return nil
}
