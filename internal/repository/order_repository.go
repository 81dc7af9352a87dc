package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type orderRepository struct {
	q    querier
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: pool, pool: pool}
}

// PlaceOrders is the checkout commit point: every order row and the cart
// wipe land in one transaction, or none of them do.
func (r *orderRepository) PlaceOrders(ctx context.Context, customerID uuid.UUID, orders []domain.Order) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("customerID is empty")
	}
	if r.pool == nil {
		return fmt.Errorf("PlaceOrders requires a pool-backed repository")
	}

	_, err := withTx(ctx, r.pool, func(tx pgx.Tx) (struct{}, error) {
		txOrders := &orderRepository{q: tx}
		for _, o := range orders {
			if _, err := txOrders.insert(ctx, o); err != nil {
				return struct{}{}, fmt.Errorf("insert: %w", err)
			}
		}

		if err := NewCartWithTx(tx).Clear(ctx, customerID); err != nil {
			return struct{}{}, fmt.Errorf("cart.Clear: %w", err)
		}

		return struct{}{}, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func (r *orderRepository) insert(ctx context.Context, o domain.Order) (domain.Order, error) {
	row := r.q.QueryRow(ctx, `
		INSERT INTO orders (customer_id, product_id, price, payment_id, quantity, status)
		VALUES ($1, $2, $3::numeric, $4, $5, $6)
		RETURNING id, customer_id, product_id, price::text, payment_id, quantity, status, created_at`,
		o.CustomerID, o.ProductID, o.Price.Amount.String(), o.PaymentID, o.Quantity, string(o.Status))

	created, err := scanOrder(row, o.Price.Currency)
	if err != nil {
		if isPgErrCode(err, pgCodeForeignKeyViolation) {
			return domain.Order{}, fmt.Errorf("product %s: %w", o.ProductID, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("scanOrder: %w", err)
	}

	return created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, customer_id, product_id, price::text, payment_id, quantity, status, created_at
		FROM orders
		WHERE id = $1`, id)

	o, err := scanOrder(row, currency.USD)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Order{}, fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("scanOrder: %w", err)
	}

	return o, nil
}

// ListByCustomer returns the newest order first; the ordering is part of the
// contract and tests rely on it.
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}

	return r.list(ctx, `
		SELECT id, customer_id, product_id, price::text, payment_id, quantity, status, created_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC, id DESC`, customerID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	return r.list(ctx, `
		SELECT id, customer_id, product_id, price::text, payment_id, quantity, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC`)
}

func (r *orderRepository) list(ctx context.Context, sql string, args ...any) ([]domain.Order, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows, currency.USD)
		if err != nil {
			return nil, fmt.Errorf("scanOrder: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanOrder(row pgx.Row, unit currency.Unit) (domain.Order, error) {
	var (
		o      domain.Order
		price  string
		status string
	)

	err := row.Scan(&o.ID, &o.CustomerID, &o.ProductID, &price, &o.PaymentID,
		&o.Quantity, &status, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Order{}, fmt.Errorf("price[%s] is not valid: %w", price, err)
	}

	o.Price = domain.Money{Amount: amount, Currency: unit}
	o.Status = domain.OrderStatus(status)

	return o, nil
}
