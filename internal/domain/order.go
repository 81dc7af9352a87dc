package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPaid           OrderStatus = "Paid"
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusOutForDelivery OrderStatus = "Out for delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCanceled       OrderStatus = "Canceled"
)

// ParseOrderStatus validates a status submitted through the admin order form.
// Paid is deliberately absent: it is only ever set by checkout completion.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusPending, StatusAccepted, StatusOutForDelivery, StatusDelivered, StatusCanceled:
		return OrderStatus(s), nil
	}
	return "", fmt.Errorf("order status %q: %w", s, ErrInvalidArgument)
}

// Order is written once at checkout completion and never deleted.
// Price is the unit price multiplied by quantity, frozen at purchase time.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProductID  uuid.UUID
	Price      Money
	PaymentID  string
	Quantity   int
	Status     OrderStatus

	CreatedAt time.Time
}
