package routes

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	_ "presupuestos_service/docs"
	"presupuestos_service/internal/adapter/http/handlers"
	"presupuestos_service/internal/adapter/http/middleware"
	"presupuestos_service/internal/config"
	"presupuestos_service/internal/infrastructure/observability"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run starts the server and blocks until ctx is cancelled, then drains
// in-flight requests.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	metrics := observability.NewMetrics()

	stores, err := OpenStores(ctx, cfg)
	if err != nil {
		return err
	}
	deps, err := NewDependencies(ctx, cfg, stores, logger, metrics)
	if err != nil {
		return err
	}
	defer deps.Close()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("numbering", cfg.QuoteNumbering),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the gin engine with every route of the service.
func NewRouter(d *Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, d)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics.Registry, promhttp.HandlerOpts{})))

	quoteHandler := handlers.NewQuoteHandler(d.Quotes)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)
	sellerHandler := handlers.NewSellerHandler(d.Sellers)
	authHandler := handlers.NewAuthHandler(d.Auth)

	v1 := router.Group("/v1")
	addPingRoutes(v1, d.Checks)
	addAuthRoutes(v1, authHandler)
	addNavigationRoutes(v1)
	addDashboardRoutes(v1, dashboardHandler)
	addQuoteRoutes(v1, quoteHandler, sellerHandler)
	return router
}

func setMiddlewares(router *gin.Engine, d *Dependencies) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.Logger))
	router.Use(middleware.Recovery(d.Logger))
	router.Use(middleware.Metrics(d.Metrics))
	router.Use(middleware.Authenticate(d.Auth, d.Logger))
}

func addPingRoutes(rg *gin.RouterGroup, checks []handlers.HealthCheck) {
	rg.GET("/ping", handlers.Ping)
	rg.GET("/health", handlers.Health(checks...))
}
