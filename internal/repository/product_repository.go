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

type productRepository struct {
	q querier
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: pool}
}

const productColumns = `id, name, description, current_price::text, previous_price::text,
       price_currency, picture_path, in_stock, flash_sale, created_at`

func (r *productRepository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	if p.Name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, current_price, previous_price,
		                      price_currency, picture_path, in_stock, flash_sale)
		VALUES ($1, $2, $3::numeric, $4::numeric, $5, $6, $7, $8)
		RETURNING `+productColumns,
		p.Name, nullable(p.Description),
		p.CurrentPrice.Amount.String(), p.PreviousPrice.Amount.String(),
		p.CurrentPrice.Currency.String(), nullable(p.PicturePath),
		p.InStock, p.FlashSale)

	created, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return created, nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return p, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at`)
}

func (r *productRepository) ListFlashSale(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products WHERE flash_sale ORDER BY created_at`)
}

func (r *productRepository) list(ctx context.Context, sql string) ([]domain.Product, error) {
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

// Update overwrites the full row, matching the admin form which always
// submits every field.
func (r *productRepository) Update(ctx context.Context, p domain.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products
		SET name           = $2,
		    description    = $3,
		    current_price  = $4::numeric,
		    previous_price = $5::numeric,
		    price_currency = $6,
		    picture_path   = $7,
		    in_stock       = $8,
		    flash_sale     = $9
		WHERE id = $1`,
		p.ID, p.Name, nullable(p.Description),
		p.CurrentPrice.Amount.String(), p.PreviousPrice.Amount.String(),
		p.CurrentPrice.Currency.String(), nullable(p.PicturePath),
		p.InStock, p.FlashSale)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete refuses to remove a product that live cart lines or orders still
// reference, so order history never dangles.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isPgErrCode(err, pgCodeForeignKeyViolation) {
			return fmt.Errorf("product %s is referenced: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("q.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p             domain.Product
		currentPrice  string
		previousPrice string
		priceCurrency string
		description   *string
		picturePath   *string
	)

	err := row.Scan(&p.ID, &p.Name, &description, &currentPrice, &previousPrice,
		&priceCurrency, &picturePath, &p.InStock, &p.FlashSale, &p.CreatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	if err := fillProductPrices(&p, currentPrice, previousPrice, priceCurrency, description, picturePath); err != nil {
		return domain.Product{}, fmt.Errorf("fillProductPrices: %w", err)
	}

	return p, nil
}

func fillProductPrices(p *domain.Product, currentPrice, previousPrice, priceCurrency string, description, picturePath *string) error {
	parsedCurrency, err := currency.ParseISO(priceCurrency)
	if err != nil {
		return fmt.Errorf("currency[%s] is not valid: %w", priceCurrency, err)
	}

	current, err := decimal.NewFromString(currentPrice)
	if err != nil {
		return fmt.Errorf("current_price[%s] is not valid: %w", currentPrice, err)
	}

	previous, err := decimal.NewFromString(previousPrice)
	if err != nil {
		return fmt.Errorf("previous_price[%s] is not valid: %w", previousPrice, err)
	}

	p.CurrentPrice = domain.Money{Amount: current, Currency: parsedCurrency}
	p.PreviousPrice = domain.Money{Amount: previous, Currency: parsedCurrency}
	if description != nil {
		p.Description = *description
	}
	if picturePath != nil {
		p.PicturePath = *picturePath
	}

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
