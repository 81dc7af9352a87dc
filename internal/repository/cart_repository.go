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
)

type cartRepository struct {
	q querier
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{q: pool}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{q: tx}
}

// AddLine relies on the (customer_id, product_id) unique constraint, so two
// concurrent adds of the same product collapse into one row.
func (r *cartRepository) AddLine(ctx context.Context, customerID, productID uuid.UUID) (domain.CartLine, error) {
	if customerID == uuid.Nil {
		return domain.CartLine{}, fmt.Errorf("customerID is empty")
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, 1)
		ON CONFLICT (customer_id, product_id)
			DO UPDATE SET quantity = cart_items.quantity + 1
		RETURNING id, customer_id, product_id, quantity, created_at`,
		customerID, productID)

	line, err := scanCartLine(row)
	if err != nil {
		if isPgErrCode(err, pgCodeForeignKeyViolation) {
			return domain.CartLine{}, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		}
		return domain.CartLine{}, fmt.Errorf("scanCartLine: %w", err)
	}

	return line, nil
}

func (r *cartRepository) GetCart(ctx context.Context, customerID uuid.UUID) ([]domain.CartViewLine, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}

	rows, err := r.q.Query(ctx, `
		SELECT ci.id, ci.customer_id, ci.product_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.description, p.current_price::text, p.previous_price::text,
		       p.price_currency, p.picture_path, p.in_stock, p.flash_sale, p.created_at
		FROM cart_items ci
		         JOIN products p ON p.id = ci.product_id
		WHERE ci.customer_id = $1
		ORDER BY ci.created_at`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var lines []domain.CartViewLine
	for rows.Next() {
		line, err := scanCartViewLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanCartViewLine: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return lines, nil
}

// AdjustQuantity refuses to take a line below quantity 1; shrinking a cart
// beyond that is an explicit DeleteLine.
func (r *cartRepository) AdjustQuantity(ctx context.Context, customerID, lineID uuid.UUID, delta int) (domain.CartLine, error) {
	if customerID == uuid.Nil {
		return domain.CartLine{}, fmt.Errorf("customerID is empty")
	}

	row := r.q.QueryRow(ctx, `
		UPDATE cart_items
		SET quantity = quantity + $3
		WHERE id = $1
		  AND customer_id = $2
		  AND quantity + $3 >= 1
		RETURNING id, customer_id, product_id, quantity, created_at`,
		lineID, customerID, delta)

	line, err := scanCartLine(row)
	if err == nil {
		return line, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.CartLine{}, fmt.Errorf("scanCartLine: %w", err)
	}

	// No row updated: tell a missing/foreign line apart from a floor hit.
	var exists bool
	existsErr := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cart_items WHERE id = $1 AND customer_id = $2)`,
		lineID, customerID).Scan(&exists)
	if existsErr != nil {
		return domain.CartLine{}, fmt.Errorf("exists check: %w", existsErr)
	}
	if exists {
		return domain.CartLine{}, fmt.Errorf("quantity cannot drop below 1: %w", domain.ErrInvalidState)
	}

	return domain.CartLine{}, fmt.Errorf("cart line %s: %w", lineID, domain.ErrNotFound)
}

func (r *cartRepository) DeleteLine(ctx context.Context, customerID, lineID uuid.UUID) (int, error) {
	if customerID == uuid.Nil {
		return 0, fmt.Errorf("customerID is empty")
	}

	var quantity int
	err := r.q.QueryRow(ctx, `
		DELETE
		FROM cart_items
		WHERE id = $1
		  AND customer_id = $2
		RETURNING quantity`,
		lineID, customerID).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("cart line %s: %w", lineID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("q.QueryRow: %w", err)
	}

	return quantity, nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return fmt.Errorf("customerID is empty")
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func scanCartLine(row pgx.Row) (domain.CartLine, error) {
	var line domain.CartLine
	err := row.Scan(&line.ID, &line.CustomerID, &line.ProductID, &line.Quantity, &line.CreatedAt)
	if err != nil {
		return domain.CartLine{}, err
	}
	return line, nil
}

func scanCartViewLine(row pgx.Row) (domain.CartViewLine, error) {
	var (
		line          domain.CartViewLine
		currentPrice  string
		previousPrice string
		priceCurrency string
		description   *string
		picturePath   *string
	)

	err := row.Scan(
		&line.ID, &line.CustomerID, &line.ProductID, &line.Quantity, &line.CreatedAt,
		&line.Product.ID, &line.Product.Name, &description, &currentPrice, &previousPrice,
		&priceCurrency, &picturePath, &line.Product.InStock, &line.Product.FlashSale,
		&line.Product.CreatedAt)
	if err != nil {
		return domain.CartViewLine{}, err
	}

	if err := fillProductPrices(&line.Product, currentPrice, previousPrice, priceCurrency, description, picturePath); err != nil {
		return domain.CartViewLine{}, fmt.Errorf("fillProductPrices: %w", err)
	}

	return line, nil
}
