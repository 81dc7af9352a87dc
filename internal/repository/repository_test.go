package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_storefront.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func createTestCustomer(t *testing.T, ctx context.Context, repo port.CustomerRepository) domain.Customer {
	t.Helper()

	created, err := repo.Create(ctx, domain.Customer{
		Username:     gofakeit.Username(),
		Email:        gofakeit.Email(),
		PasswordHash: gofakeit.Password(true, true, true, false, false, 32),
	})
	require.NoError(t, err)

	return created
}

func createTestProduct(t *testing.T, ctx context.Context, repo port.ProductRepository) domain.Product {
	t.Helper()

	created, err := repo.Create(ctx, randomProduct())
	require.NoError(t, err)

	return created
}

func randomProduct() domain.Product {
	price := randomMoney()

	return domain.Product{
		Name:         gofakeit.ProductName(),
		Description:  gofakeit.Sentence(6),
		CurrentPrice: price,
		PreviousPrice: domain.Money{
			Amount:   price.Amount.Add(decimal.NewFromInt(int64(gofakeit.Number(1, 50)))),
			Currency: price.Currency,
		},
		PicturePath: "/media/" + gofakeit.Word() + ".png",
		InStock:     gofakeit.Number(0, 100),
		FlashSale:   gofakeit.Bool(),
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: currency.USD,
	}
}

func mustUUID() uuid.UUID {
	return uuid.MustParse(gofakeit.UUID())
}
