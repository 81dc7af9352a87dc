package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AccountService struct {
	customers port.CustomerRepository
}

func NewAccounts(customers port.CustomerRepository) *AccountService {
	return &AccountService{customers: customers}
}

func (s *AccountService) Signup(ctx context.Context, username, email, password string) (domain.Customer, error) {
	if username == "" {
		return domain.Customer{}, fmt.Errorf("username is required: %w", domain.ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return domain.Customer{}, fmt.Errorf("email %q is not valid: %w", email, domain.ErrInvalidArgument)
	}
	if len(password) < minPasswordLength {
		return domain.Customer{}, fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLength, domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	created, err := s.customers.Create(ctx, domain.Customer{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.Create: %w", err)
	}

	return created, nil
}

// Login never tells an unknown email apart from a wrong password.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return domain.Customer{}, fmt.Errorf("bad credentials: %w", domain.ErrUnauthorized)
	}

	return customer, nil
}

// ChangePassword only works on the actor's own account.
func (s *AccountService) ChangePassword(ctx context.Context, actor domain.Actor, customerID uuid.UUID, current, newPassword string) error {
	if actor.CustomerID != customerID {
		return fmt.Errorf("cannot change another customer's password: %w", domain.ErrUnauthorized)
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customers.GetByID: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(current)) != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrInvalidArgument)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLength, domain.ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if err := s.customers.UpdatePassword(ctx, customerID, string(hash)); err != nil {
		return fmt.Errorf("customers.UpdatePassword: %w", err)
	}

	return nil
}

func (s *AccountService) Profile(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.GetByID: %w", err)
	}
	return customer, nil
}

func (s *AccountService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers.List: %w", err)
	}
	return customers, nil
}
