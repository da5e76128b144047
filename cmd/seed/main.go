package main

import (
	"context"
	"log"
	"os"

	"tienda-storefront/internal/config"
	"tienda-storefront/internal/db"
	"tienda-storefront/internal/repository/remote"
	"tienda-storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()

	var store remote.Store
	switch cfg.RemoteBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			logger.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		store = remote.NewPostgres(pool)
	case config.BackendFirestore:
		client, err := remote.ConnectFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			logger.Fatalf("connect firestore: %v", err)
		}
		defer client.Close()
		store = remote.NewFirestore(client)
	default:
		logger.Fatalf("unknown remote backend %q", cfg.RemoteBackend)
	}

	if err := seed.Apply(ctx, store); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Println("seed applied")
}
