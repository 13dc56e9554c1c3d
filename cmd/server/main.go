package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pantrypal/backend/config"
	httpDelivery "github.com/pantrypal/backend/internal/delivery/http"
	"github.com/pantrypal/backend/internal/domain"
	"github.com/pantrypal/backend/internal/infrastructure/cache"
	"github.com/pantrypal/backend/internal/infrastructure/catalog"
	"github.com/pantrypal/backend/internal/infrastructure/logging"
	"github.com/pantrypal/backend/internal/infrastructure/metrics"
	"github.com/pantrypal/backend/internal/usecase"
)

const (
	catalogLoadTimeout = 60 * time.Second
	shutdownTimeout    = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("starting PantryPal backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache", cfg.Cache.Type))

	// The index is built before the router is served and never mutated afterwards
	ctx, cancel := context.WithTimeout(context.Background(), catalogLoadTimeout)
	entries, err := newCatalogSource(cfg, logger).Load(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	index := usecase.BuildCatalogIndex(entries)
	metrics.SetCatalogEntries(index.Len())
	logger.Info("catalog indexed",
		zap.Int("entries", len(entries)),
		zap.Int("food_entries", index.Len()))

	iconCache, closeCache, err := newCache(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	matcher := usecase.NewIconMatcher(index, usecase.MatchConfig{
		MinScanScore:       cfg.Matching.MinScore,
		AssetBasePath:      cfg.Catalog.AssetBasePath,
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	}, logger)

	iconService := usecase.NewIconService(iconCache, matcher, usecase.IconServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	}, logger)

	stepNormalizer := usecase.NewStepNormalizer(usecase.StepConfig{
		MinLength: cfg.Steps.MinLength,
		MaxLength: cfg.Steps.MaxLength,
	}, logger)

	logger.Info("matching configured",
		zap.Int("min_score", cfg.Matching.MinScore),
		zap.Bool("debug", cfg.Matching.EnableDebugLogging),
		zap.Int("step_min", cfg.Steps.MinLength),
		zap.Int("step_max", cfg.Steps.MaxLength))

	handler := httpDelivery.NewHandler(iconService, stepNormalizer, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

// newCatalogSource prefers the remote catalog when a URL is configured
func newCatalogSource(cfg *config.Config, logger *zap.Logger) domain.CatalogSource {
	if cfg.Catalog.URL != "" {
		client := catalog.NewClient(cfg.Catalog.URL, float64(cfg.RateLimit.Catalog)/60, logger)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		logger.Info("using remote catalog", zap.String("url", cfg.Catalog.URL))
		return client
	}

	logger.Info("using bundled catalog", zap.String("path", cfg.Catalog.Path))
	return catalog.NewFileSource(cfg.Catalog.Path, logger)
}

// newCache builds the configured cache and a function releasing it
func newCache(cfg *config.Config) (domain.CacheRepository, func(), error) {
	if cfg.Cache.Type == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, func() { _ = redisCache.Close() }, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, func() { _ = memoryCache.Close() }, nil
}
