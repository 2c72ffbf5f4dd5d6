package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agrimart/internal/config"
	"agrimart/internal/db"
	"agrimart/internal/httpserver"
	"agrimart/internal/notifier"
	cartrepo "agrimart/internal/repository/cart"
	"agrimart/internal/repository/memory"
	orderrepo "agrimart/internal/repository/order"
	productrepo "agrimart/internal/repository/product"
	"agrimart/internal/seed"
	cartsvc "agrimart/internal/service/cart"
	catalogsvc "agrimart/internal/service/catalog"
	ordersvc "agrimart/internal/service/order"
	sessionsvc "agrimart/internal/service/session"
)

type stores struct {
	products productrepo.Repository
	carts    cartrepo.Repository
	orders   orderrepo.Repository
}

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	deps := httpserver.Deps{
		SessionSecret:    cfg.SessionSecret,
		CookieSecure:     cfg.SessionCookieSecure,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		CurrencySymbol:   cfg.CurrencySymbol,
	}

	var st stores
	switch cfg.StoreBackend {
	case config.BackendMemory:
		mem := memory.New()
		if n, err := seed.Apply(ctx, mem.Products()); err != nil {
			logger.Fatalf("seed memory store: %v", err)
		} else {
			logger.Printf("memory store seeded with %d products", n)
		}
		st = stores{products: mem.Products(), carts: mem.Carts(), orders: mem.Orders()}
	case config.BackendPostgres:
		dbpool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer dbpool.Close()
		deps.DB = dbpool
		st = stores{
			products: productrepo.NewPostgres(dbpool, logger),
			carts:    cartrepo.NewPostgres(dbpool),
			orders:   orderrepo.NewPostgres(dbpool, logger),
		}
	default:
		logger.Fatalf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.RedisAddr != "" {
		client, err := productrepo.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Printf("catalog cache disabled: %v", err)
		} else {
			defer client.Close()
			st.products = productrepo.NewCached(st.products, client, cfg.CatalogCacheTTL, logger)
			logger.Printf("catalog cache enabled addr=%s ttl=%s", cfg.RedisAddr, cfg.CatalogCacheTTL)
		}
	}

	var n notifier.Notifier = notifier.NewLog(logger)
	if cfg.SESSender != "" {
		sesNotifier, err := notifier.NewSES(ctx, notifier.SESConfig{
			Region:          cfg.SESRegion,
			Sender:          cfg.SESSender,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
			CurrencySymbol:  cfg.CurrencySymbol,
		}, logger)
		if err != nil {
			logger.Printf("order e-mails disabled: %v", err)
		} else {
			n = sesNotifier
		}
	}

	deps.Catalog = catalogsvc.New(st.products, logger)
	deps.Cart = cartsvc.New(st.carts, st.products)
	deps.Orders = ordersvc.New(st.orders, st.carts, n, logger)
	deps.Sessions = sessionsvc.New(logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, deps)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s store=%s", cfg.HTTPAddr, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
