// Command setup creates the DynamoDB tables and the seller/created_at index.
// Existing tables are left untouched.
package main

import (
	"context"
	"log"
	"time"

	"presupuestos_service/internal/adapter/persistence/repository"
	"presupuestos_service/internal/config"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/infrastructure/observability"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.ConnectDynamoDB(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to dynamodb", zap.Error(err))
	}

	created, err := repository.CreateTables(ctx, client, cfg)
	if err != nil {
		logger.Fatal("failed to create tables", zap.Error(err))
	}
	logger.Info("tables ready",
		zap.Strings("created", created),
		zap.String("quote_index", repository.QuoteSellerCreatedIndex),
	)
}
