package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tienda-storefront/internal/config"
	"tienda-storefront/internal/db"
	"tienda-storefront/internal/importer"
	"tienda-storefront/internal/repository/remote"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	var store remote.Store
	switch cfg.RemoteBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			log.Fatalf("connect db: %v", err)
		}
		defer pool.Close()
		store = remote.NewPostgres(pool)
	case config.BackendFirestore:
		client, err := remote.ConnectFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("connect firestore: %v", err)
		}
		defer client.Close()
		store = remote.NewFirestore(client)
	default:
		log.Fatalf("unknown remote backend %q", cfg.RemoteBackend)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, store)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
