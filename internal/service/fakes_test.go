package service_test

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// In-memory doubles mirroring the postgres repositories' contracts, so the
// services can be exercised without a database.

type fakeProductRepo struct {
	products map[uuid.UUID]domain.Product
	order    []uuid.UUID
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]domain.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	p.ID = uuid.New()
	f.products[p.ID] = p
	f.order = append(f.order, p.ID)
	return p, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range f.order {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) ListFlashSale(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range f.order {
		if p, ok := f.products[id]; ok && p.FlashSale {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	delete(f.products, id)
	return nil
}

type fakeCartRepo struct {
	products *fakeProductRepo
	lines    []domain.CartLine
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{products: products}
}

func (f *fakeCartRepo) AddLine(_ context.Context, customerID, productID uuid.UUID) (domain.CartLine, error) {
	if _, ok := f.products.products[productID]; !ok {
		return domain.CartLine{}, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}

	for i, line := range f.lines {
		if line.CustomerID == customerID && line.ProductID == productID {
			f.lines[i].Quantity++
			return f.lines[i], nil
		}
	}

	line := domain.CartLine{ID: uuid.New(), CustomerID: customerID, ProductID: productID, Quantity: 1}
	f.lines = append(f.lines, line)
	return line, nil
}

func (f *fakeCartRepo) GetCart(_ context.Context, customerID uuid.UUID) ([]domain.CartViewLine, error) {
	var out []domain.CartViewLine
	for _, line := range f.lines {
		if line.CustomerID != customerID {
			continue
		}
		out = append(out, domain.CartViewLine{CartLine: line, Product: f.products.products[line.ProductID]})
	}
	return out, nil
}

func (f *fakeCartRepo) AdjustQuantity(_ context.Context, customerID, lineID uuid.UUID, delta int) (domain.CartLine, error) {
	for i, line := range f.lines {
		if line.ID != lineID || line.CustomerID != customerID {
			continue
		}
		if line.Quantity+delta < 1 {
			return domain.CartLine{}, fmt.Errorf("quantity cannot drop below 1: %w", domain.ErrInvalidState)
		}
		f.lines[i].Quantity += delta
		return f.lines[i], nil
	}
	return domain.CartLine{}, fmt.Errorf("cart line %s: %w", lineID, domain.ErrNotFound)
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, customerID, lineID uuid.UUID) (int, error) {
	for i, line := range f.lines {
		if line.ID != lineID || line.CustomerID != customerID {
			continue
		}
		f.lines = append(f.lines[:i], f.lines[i+1:]...)
		return line.Quantity, nil
	}
	return 0, fmt.Errorf("cart line %s: %w", lineID, domain.ErrNotFound)
}

func (f *fakeCartRepo) Clear(_ context.Context, customerID uuid.UUID) error {
	kept := f.lines[:0]
	for _, line := range f.lines {
		if line.CustomerID != customerID {
			kept = append(kept, line)
		}
	}
	f.lines = kept
	return nil
}

type fakeOrderRepo struct {
	placed     []domain.Order
	placeCalls int
	placeErr   error

	updateCalls int
	statuses    map[uuid.UUID]domain.OrderStatus
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{statuses: map[uuid.UUID]domain.OrderStatus{}}
}

func (f *fakeOrderRepo) PlaceOrders(_ context.Context, customerID uuid.UUID, orders []domain.Order) error {
	f.placeCalls++
	if f.placeErr != nil {
		return f.placeErr
	}
	for _, o := range orders {
		o.ID = uuid.New()
		o.CustomerID = customerID
		f.placed = append(f.placed, o)
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Order, error) {
	for _, o := range f.placed {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
}

func (f *fakeOrderRepo) ListByCustomer(_ context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.placed {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	return append([]domain.Order(nil), f.placed...), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	f.updateCalls++
	f.statuses[id] = status
	return nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]domain.Customer
	order     []uuid.UUID
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[uuid.UUID]domain.Customer{}}
}

func (f *fakeCustomerRepo) Create(_ context.Context, c domain.Customer) (domain.Customer, error) {
	for _, existing := range f.customers {
		if existing.Email == c.Email {
			return domain.Customer{}, fmt.Errorf("email %s: %w", c.Email, domain.ErrEmailTaken)
		}
	}

	c.ID = uuid.New()
	c.Role = domain.RoleCustomer
	if len(f.customers) == 0 {
		c.Role = domain.RoleAdmin
	}
	f.customers[c.ID] = c
	f.order = append(f.order, c.ID)
	return c, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

func (f *fakeCustomerRepo) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return domain.Customer{}, fmt.Errorf("customer %s: %w", email, domain.ErrNotFound)
}

func (f *fakeCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	for _, id := range f.order {
		out = append(out, f.customers[id])
	}
	return out, nil
}

func (f *fakeCustomerRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	c, ok := f.customers[id]
	if !ok {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	c.PasswordHash = passwordHash
	f.customers[id] = c
	return nil
}

type fakeProvider struct {
	session port.CheckoutSession
	intent  port.PaymentIntent

	createErr     error
	getSessionErr error
	getIntentErr  error

	createReqs      []port.CheckoutSessionRequest
	getSessionCalls int
}

func (f *fakeProvider) CreateSession(_ context.Context, req port.CheckoutSessionRequest) (port.CheckoutSession, error) {
	f.createReqs = append(f.createReqs, req)
	if f.createErr != nil {
		return port.CheckoutSession{}, f.createErr
	}
	return f.session, nil
}

func (f *fakeProvider) GetSession(_ context.Context, id string) (port.CheckoutSession, error) {
	f.getSessionCalls++
	if f.getSessionErr != nil {
		return port.CheckoutSession{}, f.getSessionErr
	}
	return f.session, nil
}

func (f *fakeProvider) GetPaymentIntent(_ context.Context, id string) (port.PaymentIntent, error) {
	if f.getIntentErr != nil {
		return port.PaymentIntent{}, f.getIntentErr
	}
	return f.intent, nil
}
