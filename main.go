package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"gopanel/adapters/postgres"
	"gopanel/internal"
	"gopanel/internal/aggregate"
	"gopanel/internal/batch"
	"gopanel/internal/config"
	"gopanel/internal/session"
	"gopanel/ui"
)

func main() {
	// Load .env file if present (ignore error in production)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()
	engine := aggregate.NewEngine(logger)
	executor := batch.NewExecutor(engine, cfg.Batch.MaxConcurrent, logger)

	serverCfg := ui.Config{
		Engine: engine,
		Batch:  executor,
		Log:    logger,
	}

	// Review sessions need a database; one-shot aggregation does not.
	if cfg.Database.URL != "" {
		ctx := context.Background()
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}

		repo := postgres.NewReviewRepository(db)
		serverCfg.Reviews = session.NewReviewService(repo, engine, logger)
		logger.Info("review sessions enabled")
	} else {
		logger.Warn("DATABASE_URL not set, review session routes disabled")
	}

	server := ui.NewServer(serverCfg)
	if err := server.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
