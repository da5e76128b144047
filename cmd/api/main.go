package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"tienda-storefront/internal/auth"
	"tienda-storefront/internal/config"
	"tienda-storefront/internal/db"
	"tienda-storefront/internal/domain"
	"tienda-storefront/internal/httpserver"
	"tienda-storefront/internal/repository/localstore"
	"tienda-storefront/internal/repository/remote"
	cartsvc "tienda-storefront/internal/service/cart"
	catalogsvc "tienda-storefront/internal/service/catalog"
	ordersvc "tienda-storefront/internal/service/order"
	sessionsvc "tienda-storefront/internal/service/session"
	wishlistsvc "tienda-storefront/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var store remote.Store
	switch cfg.RemoteBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect to db: %v", err)
		}
		defer pool.Close()
		store = remote.NewPostgres(pool)
	case config.BackendFirestore:
		client, err := remote.ConnectFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			logger.Fatalf("connect to firestore: %v", err)
		}
		defer client.Close()
		store = remote.NewFirestore(client)
	default:
		logger.Fatalf("unknown remote backend %q", cfg.RemoteBackend)
	}

	local, err := localstore.NewFile(cfg.DataDir)
	if err != nil {
		logger.Fatalf("init local store: %v", err)
	}

	var provider auth.Provider
	if cfg.ProjectID != "" && cfg.FirebaseAPIKey != "" {
		fb, err := auth.NewFirebase(ctx, cfg.ProjectID, cfg.CredentialsFile, cfg.FirebaseAPIKey)
		if err != nil {
			logger.Fatalf("init auth provider: %v", err)
		}
		provider = fb
	} else {
		logger.Printf("auth provider not configured, sign-in disabled")
	}

	sessions := sessionsvc.New(provider, store, logger)
	catalog := catalogsvc.New(store, logger)
	cart := cartsvc.New(local, store, sessions, logger)
	wishlist := wishlistsvc.New(local, store, sessions, logger)
	orders := ordersvc.New(store, cart, sessions, logger)

	sessions.Subscribe(func(s *domain.Session) {
		if s == nil {
			orders.ClearHistory()
			return
		}
		catalog.Refresh(ctx)
		cart.ReconcileOnLogin(ctx, s.UserID)
		wishlist.ReconcileOnLogin(ctx, s.UserID)
		orders.LoadHistory(ctx, s.UserID)
	})

	catalog.Refresh(ctx)

	pinger, _ := store.(httpserver.Pinger)
	srv, err := httpserver.New(cfg.HTTPAddr, logger, pinger, httpserver.Deps{
		Catalog:  catalog,
		Cart:     cart,
		Wishlist: wishlist,
		Orders:   orders,
		Sessions: sessions,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
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
