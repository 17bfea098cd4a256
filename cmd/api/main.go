package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"presupuestos_service/internal/adapter/http/routes"
	"presupuestos_service/internal/config"
	"presupuestos_service/internal/infrastructure/observability"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Presupuestos API
// @version         1.0
// @description     Quotes (presupuestos) with per-seller daily numbering, approvals and role-guarded views, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.StoreDriver),
		zap.String("timezone", cfg.Timezone),
		zap.Bool("redis_sessions", cfg.RedisURL != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := observability.InitTracer(ctx, cfg.OTLPEndpoint, "presupuestos-service")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() { _ = shutdown(context.Background()) }()

	if err := routes.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
