// Command admin-devseed loads demo players and action logs into a local
// development database.
package main

import (
	"context"
	"os"

	"github.com/sunrise-rp/admin-api/internal/bootstrap"
	"github.com/sunrise-rp/admin-api/internal/devseed"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1)
	}

	if !cfg.IsDev {
		logger.ErrorContext(ctx, "refusing to seed: not a development environment (set DEV=true)")
		os.Exit(1)
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cfg.Postgres,
		Logger:   logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "connect database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database", "error", cerr)
		}
	}()

	if err := devseed.Run(ctx, db, logger); err != nil {
		logger.ErrorContext(ctx, "seeding failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "development seeding complete")
}
