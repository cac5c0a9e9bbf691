// Package app wires the catalog service together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/storecatalog/internal/config"
	"github.com/abgdnv/storecatalog/internal/service"
	"github.com/abgdnv/storecatalog/internal/store"
	grpcImpl "github.com/abgdnv/storecatalog/internal/transport/grpc"
	"github.com/abgdnv/storecatalog/internal/transport/rest"
	"github.com/abgdnv/storecatalog/pkg/auth"
	pkgcfg "github.com/abgdnv/storecatalog/pkg/config"
	"github.com/abgdnv/storecatalog/pkg/messaging"
	pkgnats "github.com/abgdnv/storecatalog/pkg/nats"
	"github.com/abgdnv/storecatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

const ServiceName = "catalog"

// Repositories groups the storage backends used by the services.
type Repositories struct {
	Products store.ProductStore
	Stores   store.StoreStore
}

// PostgresRepositories returns repositories backed by the given pool.
func PostgresRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Products: store.NewPgProductStore(pool),
		Stores:   store.NewPgStoreStore(pool),
	}
}

// MemoryRepositories returns repositories sharing one in-memory database.
func MemoryRepositories() Repositories {
	mem := store.NewMemoryDB()
	return Repositories{
		Products: mem.Products(),
		Stores:   mem.Stores(),
	}
}

type Dependencies struct {
	ProductService     service.ProductService
	StoreService       service.StoreService
	AssociationService service.AssociationService
	Logger             *slog.Logger
	// MetricsHandler serves the Prometheus scrape endpoint on MetricsPath when set.
	MetricsHandler http.Handler
	MetricsPath    string
	// Verifier guards the write routes when set.
	Verifier auth.Verifier
}

// SetupDependencies builds the services. The meter provider must be installed before
// calling it so the association metrics are recorded.
func SetupDependencies(repos Repositories, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	return &Dependencies{
		ProductService:     service.NewProductService(repos.Products),
		StoreService:       service.NewStoreService(repos.Stores),
		AssociationService: service.NewAssociationService(repos.Products, repos.Stores, publisher),
		Logger:             logger,
	}
}

// SetupPublisher connects to NATS JetStream and makes sure the catalog stream exists.
// When NATS is disabled events are discarded. The returned func closes the connection.
// Publishing goes through a circuit breaker configured by breakerCfg.
func SetupPublisher(ctx context.Context, cfg pkgcfg.NATSConfig, breakerCfg pkgcfg.CircuitBreakerConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		logger.Info("NATS is disabled, domain events will not be published")
		return messaging.NoopPublisher{}, func() {}, nil
	}

	nc, err := pkgnats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pkgnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := pkgnats.EnsureStream(streamCtx, js, cfg.Stream, messaging.CatalogSubjects); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to prepare NATS stream: %w", err)
	}
	logger.Info("Connected to NATS", slog.String("url", cfg.Url), slog.String("stream", cfg.Stream))

	closeFn := func() {
		if err := nc.Drain(); err != nil {
			logger.Error("Failed to drain NATS connection", slog.String("error", err.Error()))
			return
		}
		logger.Info("NATS connection drained")
	}
	return messaging.NewBreakerPublisher(pkgnats.NewNatsPublisher(js), breakerCfg, logger), closeFn, nil
}

// SetupVerifier returns the bearer token verifier, or nil when authentication is disabled.
func SetupVerifier(ctx context.Context, cfg pkgcfg.AuthConfig, logger *slog.Logger) (auth.Verifier, error) {
	if !cfg.Enabled {
		logger.Warn("Authentication is disabled, write routes are open")
		return nil, nil
	}
	verifier, err := auth.NewJWTVerifier(ctx, cfg.IdP)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}
	return verifier, nil
}

// SetupHttpHandler builds the router of the catalog service.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(ServiceName, deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the catalog service.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.ProductService, deps.StoreService, deps.AssociationService, deps.Logger)
	var writeGuards []func(http.Handler) http.Handler
	if deps.Verifier != nil {
		writeGuards = append(writeGuards, auth.RequireBearer(deps.Verifier, deps.Logger))
	}
	handler.RegisterRoutes(mux, writeGuards...)
	if deps.MetricsHandler != nil {
		mux.Method(http.MethodGet, deps.MetricsPath, deps.MetricsHandler)
	}
}

// SetupHttpServer creates and configures an HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}

// SetupGrpcServer initializes the gRPC server exposing the health protocol.
func SetupGrpcServer(health *grpcImpl.HealthReporter, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, health.Register)
}
