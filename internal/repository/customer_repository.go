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

type customerRepository struct {
	q querier
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{q: pool}
}

// Create makes the first account the store admin. The CASE runs inside the
// insert, so two racing signups cannot both claim the role.
func (r *customerRepository) Create(ctx context.Context, c domain.Customer) (domain.Customer, error) {
	if c.Email == "" {
		return domain.Customer{}, fmt.Errorf("email is empty")
	}

	row := r.q.QueryRow(ctx, `
		INSERT INTO customers (username, email, password_hash, role)
		VALUES ($1, $2, $3,
		        CASE WHEN EXISTS (SELECT 1 FROM customers) THEN 'customer' ELSE 'admin' END)
		RETURNING id, username, email, password_hash, role, date_joined`,
		c.Username, c.Email, c.PasswordHash)

	created, err := scanCustomer(row)
	if err != nil {
		if isPgErrCode(err, pgCodeUniqueViolation) {
			return domain.Customer{}, fmt.Errorf("email %s: %w", c.Email, domain.ErrEmailTaken)
		}
		return domain.Customer{}, fmt.Errorf("scanCustomer: %w", err)
	}

	return created, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	row := r.q.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, date_joined
		FROM customers
		WHERE id = $1`, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
		}
		return domain.Customer{}, fmt.Errorf("scanCustomer: %w", err)
	}

	return c, nil
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	if email == "" {
		return domain.Customer{}, fmt.Errorf("email is empty")
	}

	row := r.q.QueryRow(ctx, `
		SELECT id, username, email, password_hash, role, date_joined
		FROM customers
		WHERE email = $1`, email)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("customer %s: %w", email, domain.ErrNotFound)
		}
		return domain.Customer{}, fmt.Errorf("scanCustomer: %w", err)
	}

	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, username, email, password_hash, role, date_joined
		FROM customers
		ORDER BY date_joined`)
	if err != nil {
		return nil, fmt.Errorf("q.Query: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanCustomer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("passwordHash is empty")
	}

	tag, err := r.q.Exec(ctx, `UPDATE customers SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanCustomer(row pgx.Row) (domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Role, &c.DateJoined)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}
