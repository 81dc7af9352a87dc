package port

import (
	"context"

	"golang.org/x/text/currency"
)

// SessionTokenPlaceholder is the literal the provider substitutes with the
// real session id when redirecting to the success URL.
const SessionTokenPlaceholder = "{CHECKOUT_SESSION_ID}"

type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64 // minor currency units
	Quantity    int
	Currency    currency.Unit
}

type CheckoutSessionRequest struct {
	LineItems []LineItem
	// SuccessURL carries the provider's session token placeholder so the
	// callback can identify the session.
	SuccessURL string
	CancelURL  string
}

type CheckoutSession struct {
	ID              string
	URL             string
	PaymentIntentID string
}

type PaymentIntent struct {
	ID     string
	Status string
}

// PaymentProvider is the hosted checkout black box: create a session, send
// the customer to its URL, read it back on the success callback.
type PaymentProvider interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
	GetSession(ctx context.Context, id string) (CheckoutSession, error)
	GetPaymentIntent(ctx context.Context, id string) (PaymentIntent, error)
}
