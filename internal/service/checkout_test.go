package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://shop.example.com"

func newCheckoutFixture(t *testing.T) (*service.CheckoutService, *fakeProductRepo, *fakeCartRepo, *fakeOrderRepo, *fakeProvider) {
	t.Helper()

	products := newFakeProductRepo()
	carts := newFakeCartRepo(products)
	orders := newFakeOrderRepo()
	provider := &fakeProvider{
		session: port.CheckoutSession{
			ID:              "cs_test_1",
			URL:             "https://pay.example.com/cs_test_1",
			PaymentIntentID: "pi_test_1",
		},
		intent: port.PaymentIntent{ID: "pi_test_1", Status: "succeeded"},
	}

	return service.NewCheckout(carts, products, orders, provider, baseURL), products, carts, orders, provider
}

func TestCheckoutService_InitiateCheckout(t *testing.T) {
	ctx := t.Context()

	svc, products, carts, _, provider := newCheckoutFixture(t)
	actor := domain.Actor{CustomerID: uuid.New()}

	t.Run("empty cart", func(t *testing.T) {
		_, err := svc.InitiateCheckout(ctx, actor)
		require.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Empty(t, provider.createReqs)
	})

	shoes := seedProduct(t, products, "shoes", "10.00")
	shirt := seedProduct(t, products, "shirt", "5.00")

	// two pairs of shoes, one shirt; the shirt has no description
	_, err := carts.AddLine(ctx, actor.CustomerID, shoes.ID)
	require.NoError(t, err)
	_, err = carts.AddLine(ctx, actor.CustomerID, shoes.ID)
	require.NoError(t, err)
	_, err = carts.AddLine(ctx, actor.CustomerID, shirt.ID)
	require.NoError(t, err)

	url, err := svc.InitiateCheckout(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_test_1", url)

	require.Len(t, provider.createReqs, 1)
	req := provider.createReqs[0]

	assert.Equal(t, baseURL+"/payment-success?session_id="+port.SessionTokenPlaceholder, req.SuccessURL)
	assert.Equal(t, baseURL+"/cart", req.CancelURL)

	require.Len(t, req.LineItems, 2)
	assert.Equal(t, "shoes", req.LineItems[0].Name)
	assert.Equal(t, int64(1000), req.LineItems[0].UnitAmount)
	assert.Equal(t, 2, req.LineItems[0].Quantity)
	assert.Equal(t, int64(500), req.LineItems[1].UnitAmount)
	assert.Equal(t, "NO Description Available", req.LineItems[1].Description)
}

func TestCheckoutService_InitiateCheckoutFailures(t *testing.T) {
	ctx := t.Context()

	t.Run("vanished product aborts before the provider is called", func(t *testing.T) {
		svc, products, carts, _, provider := newCheckoutFixture(t)
		actor := domain.Actor{CustomerID: uuid.New()}

		shoes := seedProduct(t, products, "shoes", "10.00")
		_, err := carts.AddLine(ctx, actor.CustomerID, shoes.ID)
		require.NoError(t, err)

		require.NoError(t, products.Delete(ctx, shoes.ID))

		_, err = svc.InitiateCheckout(ctx, actor)
		require.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, provider.createReqs)
	})

	t.Run("provider failure is tagged", func(t *testing.T) {
		svc, products, carts, _, provider := newCheckoutFixture(t)
		actor := domain.Actor{CustomerID: uuid.New()}
		provider.createErr = errors.New("stripe: boom")

		shoes := seedProduct(t, products, "shoes", "10.00")
		_, err := carts.AddLine(ctx, actor.CustomerID, shoes.ID)
		require.NoError(t, err)

		_, err = svc.InitiateCheckout(ctx, actor)
		require.ErrorIs(t, err, domain.ErrProviderFailure)
	})
}

func TestCheckoutService_CompleteCheckout(t *testing.T) {
	ctx := t.Context()

	svc, products, carts, orders, _ := newCheckoutFixture(t)
	actor := domain.Actor{CustomerID: uuid.New()}

	shoes := seedProduct(t, products, "shoes", "10.00")
	_, err := carts.AddLine(ctx, actor.CustomerID, shoes.ID)
	require.NoError(t, err)
	_, err = carts.AddLine(ctx, actor.CustomerID, shoes.ID)
	require.NoError(t, err)

	require.NoError(t, svc.CompleteCheckout(ctx, actor, "cs_test_1"))

	require.Len(t, orders.placed, 1)
	placed := orders.placed[0]
	assert.Equal(t, actor.CustomerID, placed.CustomerID)
	assert.Equal(t, shoes.ID, placed.ProductID)
	assert.Equal(t, "pi_test_1", placed.PaymentID)
	assert.Equal(t, 2, placed.Quantity)
	assert.Equal(t, domain.StatusPaid, placed.Status)
	assertDecimal(t, "20.00", placed.Price.Amount)
}

func TestCheckoutService_CompleteCheckoutFailures(t *testing.T) {
	ctx := t.Context()

	t.Run("missing session id is a provider failure", func(t *testing.T) {
		svc, _, _, orders, provider := newCheckoutFixture(t)

		err := svc.CompleteCheckout(ctx, domain.Actor{CustomerID: uuid.New()}, "")
		require.ErrorIs(t, err, domain.ErrProviderFailure)
		assert.Zero(t, provider.getSessionCalls)
		assert.Zero(t, orders.placeCalls)
	})

	t.Run("session lookup failure", func(t *testing.T) {
		svc, _, _, orders, provider := newCheckoutFixture(t)
		provider.getSessionErr = errors.New("stripe: no such session")

		err := svc.CompleteCheckout(ctx, domain.Actor{CustomerID: uuid.New()}, "cs_gone")
		require.ErrorIs(t, err, domain.ErrProviderFailure)
		assert.Zero(t, orders.placeCalls)
	})

	t.Run("empty cart is a no-op", func(t *testing.T) {
		svc, _, _, orders, _ := newCheckoutFixture(t)

		require.NoError(t, svc.CompleteCheckout(ctx, domain.Actor{CustomerID: uuid.New()}, "cs_test_1"))
		assert.Zero(t, orders.placeCalls)
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		svc, products, carts, orders, _ := newCheckoutFixture(t)
		actor := domain.Actor{CustomerID: uuid.New()}
		orders.placeErr = errors.New("pq: down")

		shoes := seedProduct(t, products, "shoes", "10.00")
		_, err := carts.AddLine(ctx, actor.CustomerID, shoes.ID)
		require.NoError(t, err)

		require.Error(t, svc.CompleteCheckout(ctx, actor, "cs_test_1"))
	})
}
