package routes

import (
	"context"
	"fmt"

	"presupuestos_service/internal/adapter/http/handlers"
	"presupuestos_service/internal/adapter/persistence/memory"
	"presupuestos_service/internal/adapter/persistence/repository"
	"presupuestos_service/internal/config"
	"presupuestos_service/internal/domain/entities"
	"presupuestos_service/internal/infrastructure/cache"
	"presupuestos_service/internal/infrastructure/database"
	"presupuestos_service/internal/infrastructure/identity"
	"presupuestos_service/internal/infrastructure/observability"
	"presupuestos_service/internal/infrastructure/session"
	"presupuestos_service/internal/usecase"
	"presupuestos_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Stores are the repositories behind the use cases.
type Stores struct {
	Quotes      interfaces.IQuoteRepository
	Counter     interfaces.IQuoteCounter
	Sellers     interfaces.ISellerRepository
	Profiles    interfaces.IProfileRepository
	Credentials interfaces.ICredentialRepository
	Checks      []handlers.HealthCheck
}

// OpenStores builds the repositories selected by STORE_DRIVER.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		return MemoryStores(ctx, cfg)
	case config.StoreDynamoDB:
		client, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		ddb := database.NewGuardedClient(client, database.NewCircuitBreaker("dynamodb"))
		return &Stores{
			Quotes:      repository.NewQuoteDynamoRepository(ddb, cfg.QuotesTable),
			Counter:     repository.NewQuoteCounterDynamoRepository(ddb, cfg.CountersTable, cfg.QuotesTable),
			Sellers:     repository.NewSellerDynamoRepository(ddb, cfg.SellersTable),
			Profiles:    repository.NewProfileDynamoRepository(ddb, cfg.ProfilesTable),
			Credentials: repository.NewCredentialDynamoRepository(ddb, cfg.CredentialsTable),
			Checks: []handlers.HealthCheck{{
				Name:  "dynamodb",
				Check: func(ctx context.Context) error { return database.Ping(ctx, client) },
			}},
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// MemoryStores keeps everything in process. Data is lost on exit. When
// SEED_EMAIL is set the stores start with that user, since cmd/seeduser
// cannot reach a process-local store.
func MemoryStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	quotes := memory.NewQuoteRepository()
	sellers := memory.NewSellerRepository()
	profiles := memory.NewProfileRepository()
	creds := memory.NewCredentialRepository()

	if email := identity.NormalizeEmail(cfg.SeedEmail); email != "" {
		hash, err := identity.HashPassword(cfg.SeedPassword)
		if err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		uid := uuid.NewString()
		if err := creds.Put(ctx, entities.Credential{Email: email, UID: uid, PasswordHash: hash}); err != nil {
			return nil, fmt.Errorf("seed credential: %w", err)
		}
		profile := entities.Profile{
			UID:      uid,
			Email:    email,
			Name:     cfg.SeedName,
			Role:     entities.ParseRole(cfg.SeedRole),
			SellerID: cfg.SeedSellerID,
		}
		if err := profiles.Put(ctx, profile); err != nil {
			return nil, fmt.Errorf("seed profile: %w", err)
		}
		if cfg.SeedSellerID != "" {
			seller := entities.Seller{ID: cfg.SeedSellerID, Code: cfg.SeedSellerID, Name: cfg.SeedName, Email: email}
			if err := sellers.Put(ctx, seller); err != nil {
				return nil, fmt.Errorf("seed seller: %w", err)
			}
		}
	}

	return &Stores{
		Quotes:      quotes,
		Counter:     memory.NewQuoteCounter(quotes),
		Sellers:     sellers,
		Profiles:    profiles,
		Credentials: creds,
	}, nil
}

// Dependencies are the wired use cases served by the router.
type Dependencies struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics

	Quotes    usecase.IQuoteUseCase
	Dashboard usecase.IDashboardUseCase
	Sellers   usecase.ISellerUseCase
	Auth      usecase.IAuthUseCase
	Checks    []handlers.HealthCheck

	closers []func()
}

// NewDependencies wires the use cases over stores. Sessions live in Redis
// when REDIS_URL is set, in process otherwise.
func NewDependencies(ctx context.Context, cfg *config.Config, stores *Stores, logger *zap.Logger, metrics *observability.Metrics) (*Dependencies, error) {
	d := &Dependencies{
		Logger:  logger,
		Metrics: metrics,
		Checks:  append([]handlers.HealthCheck(nil), stores.Checks...),
	}

	var sessions interfaces.ISessionStore = identity.NewMemorySessionStore()
	if cfg.RedisURL != "" {
		rdb, err := identity.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		sessions = identity.NewRedisSessionStore(rdb)
		d.closers = append(d.closers, func() { _ = rdb.Close() })
		d.Checks = append(d.Checks, handlers.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}

	broker := session.NewBroker(logger)
	profileCache := cache.New[entities.Profile](cfg.ProfileCacheTTL)
	resolver := usecase.NewProfileResolver(stores.Profiles, profileCache, metrics, logger)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	events, unsubscribe := broker.Subscribe(64)
	go resolver.Watch(watchCtx, events)
	d.closers = append(d.closers, stopWatch, unsubscribe, broker.Close, profileCache.Close)

	sequence, err := usecase.NewSequenceGenerator(cfg.QuoteNumbering, stores.Quotes, stores.Counter, cfg.Location(), metrics, logger)
	if err != nil {
		d.Close()
		return nil, err
	}

	provider := identity.NewProvider(stores.Credentials, sessions, broker, cfg.JWTSecret, cfg.SessionTTL, logger)

	d.Quotes = usecase.NewQuoteUseCase(stores.Quotes, stores.Sellers, sequence, cfg.Location(), metrics, logger)
	d.Dashboard = usecase.NewDashboardUseCase(stores.Quotes, stores.Sellers, logger)
	d.Sellers = usecase.NewSellerUseCase(stores.Sellers)
	d.Auth = usecase.NewAuthUseCase(provider, resolver, logger)
	return d, nil
}

// Close releases background workers and connections, newest first.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}
