package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/server"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Stub services with overridable behaviors; the zero value answers every
// call with empty results.

type stubCart struct {
	addFn    func(domain.Actor, uuid.UUID) error
	viewFn   func(domain.Actor) (domain.CartView, error)
	adjustFn func(domain.Actor, uuid.UUID) (domain.CartMutation, error)
	removeFn func(domain.Actor, uuid.UUID) (domain.CartMutation, error)
}

func (s *stubCart) AddToCart(_ context.Context, actor domain.Actor, productID uuid.UUID) error {
	if s.addFn != nil {
		return s.addFn(actor, productID)
	}
	return nil
}

func (s *stubCart) ViewCart(_ context.Context, actor domain.Actor) (domain.CartView, error) {
	if s.viewFn != nil {
		return s.viewFn(actor)
	}
	return domain.CartView{}, nil
}

func (s *stubCart) IncrementLine(_ context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	if s.adjustFn != nil {
		return s.adjustFn(actor, lineID)
	}
	return domain.CartMutation{}, nil
}

func (s *stubCart) DecrementLine(_ context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	if s.adjustFn != nil {
		return s.adjustFn(actor, lineID)
	}
	return domain.CartMutation{}, nil
}

func (s *stubCart) RemoveLine(_ context.Context, actor domain.Actor, lineID uuid.UUID) (domain.CartMutation, error) {
	if s.removeFn != nil {
		return s.removeFn(actor, lineID)
	}
	return domain.CartMutation{}, nil
}

type stubCheckout struct {
	initiateFn func(domain.Actor) (string, error)
	completeFn func(domain.Actor, string) error
}

func (s *stubCheckout) InitiateCheckout(_ context.Context, actor domain.Actor) (string, error) {
	if s.initiateFn != nil {
		return s.initiateFn(actor)
	}
	return "", nil
}

func (s *stubCheckout) CompleteCheckout(_ context.Context, actor domain.Actor, sessionID string) error {
	if s.completeFn != nil {
		return s.completeFn(actor, sessionID)
	}
	return nil
}

type stubCatalog struct {
	listFlashFn func() ([]domain.Product, error)
}

func (s *stubCatalog) Create(context.Context, service.ProductInput, *service.ImageUpload) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubCatalog) Get(context.Context, uuid.UUID) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubCatalog) List(context.Context) ([]domain.Product, error) { return nil, nil }

func (s *stubCatalog) ListFlashSale(context.Context) ([]domain.Product, error) {
	if s.listFlashFn != nil {
		return s.listFlashFn()
	}
	return nil, nil
}

func (s *stubCatalog) Update(context.Context, uuid.UUID, service.ProductInput, *service.ImageUpload) (domain.Product, error) {
	return domain.Product{}, nil
}

func (s *stubCatalog) Delete(context.Context, uuid.UUID) error { return nil }

type stubOrders struct {
	listAllFn func() ([]domain.Order, error)
}

func (s *stubOrders) ListOrders(context.Context, domain.Actor) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrders) ListAllOrders(context.Context) ([]domain.Order, error) {
	if s.listAllFn != nil {
		return s.listAllFn()
	}
	return nil, nil
}

func (s *stubOrders) Get(context.Context, uuid.UUID) (domain.Order, error) {
	return domain.Order{}, nil
}

func (s *stubOrders) UpdateStatus(context.Context, uuid.UUID, string) error { return nil }

type stubAccounts struct {
	loginFn func(email, password string) (domain.Customer, error)
}

func (s *stubAccounts) Signup(context.Context, string, string, string) (domain.Customer, error) {
	return domain.Customer{}, nil
}

func (s *stubAccounts) Login(_ context.Context, email, password string) (domain.Customer, error) {
	if s.loginFn != nil {
		return s.loginFn(email, password)
	}
	return domain.Customer{}, nil
}

func (s *stubAccounts) ChangePassword(context.Context, domain.Actor, uuid.UUID, string, string) error {
	return nil
}

func (s *stubAccounts) Profile(context.Context, uuid.UUID) (domain.Customer, error) {
	return domain.Customer{}, nil
}

func (s *stubAccounts) ListCustomers(context.Context) ([]domain.Customer, error) {
	return nil, nil
}

type fixture struct {
	router   *gin.Engine
	sessions *auth.Sessions

	cart     *stubCart
	checkout *stubCheckout
	catalog  *stubCatalog
	orders   *stubOrders
	accounts *stubAccounts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sessions, err := auth.NewSessions("test-secret", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		sessions: sessions,
		cart:     &stubCart{},
		checkout: &stubCheckout{},
		catalog:  &stubCatalog{},
		orders:   &stubOrders{},
		accounts: &stubAccounts{},
	}

	f.router = server.NewRouter(zap.NewNop(), server.Services{
		Accounts: f.accounts,
		Cart:     f.cart,
		Checkout: f.checkout,
		Catalog:  f.catalog,
		Orders:   f.orders,
	}, server.Options{
		Sessions:     sessions,
		CookieMaxAge: 3600,
	})

	return f
}

func (f *fixture) do(t *testing.T, method, target string, actor *domain.Actor) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if actor != nil {
		token, err := f.sessions.Issue(*actor)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func customerActor() *domain.Actor {
	return &domain.Actor{CustomerID: uuid.New(), Role: domain.RoleCustomer}
}

func adminActor() *domain.Actor {
	return &domain.Actor{CustomerID: uuid.New(), Role: domain.RoleAdmin}
}
