package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/media"
	"github.com/nikolayk812/storefront/internal/migrations"
	"github.com/nikolayk812/storefront/internal/payment"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/server"
	"github.com/nikolayk812/storefront/internal/service"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}

	sessions, err := auth.NewSessions(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return err
	}

	mediaStore, err := media.NewStore(cfg.Media.Dir)
	if err != nil {
		return err
	}

	stripeOpts := []payment.Option{payment.WithTimeout(cfg.Stripe.Timeout)}
	if cfg.Stripe.BaseURL != "" {
		stripeOpts = append(stripeOpts, payment.WithBaseURL(cfg.Stripe.BaseURL))
	}
	provider, err := payment.NewStripe(cfg.Stripe.APIKey, stripeOpts...)
	if err != nil {
		return err
	}

	fee, err := cfg.Checkout.Fee()
	if err != nil {
		return err
	}

	carts := repository.NewCart(pool)
	products := repository.NewProduct(pool)
	customers := repository.NewCustomer(pool)
	orders := repository.NewOrder(pool)

	router := server.NewRouter(logger, server.Services{
		Accounts: service.NewAccounts(customers),
		Cart:     service.NewCart(carts, products, fee),
		Checkout: service.NewCheckout(carts, products, orders, provider, cfg.Checkout.PublicBaseURL),
		Catalog:  service.NewCatalog(products, mediaStore),
		Orders:   service.NewOrders(orders),
	}, server.Options{
		Sessions:     sessions,
		CookieMaxAge: int(cfg.Session.TTL.Seconds()),
		MediaDir:     mediaStore.Dir(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	logger.Info("shutdown complete")
	return nil
}
