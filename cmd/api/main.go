package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/config"
	"storefront-gateway/internal/adapter/gateway/stripe"
	httpHandler "storefront-gateway/internal/adapter/http/handler"
	"storefront-gateway/internal/adapter/inventory"
	"storefront-gateway/internal/adapter/ratefeed"
	"storefront-gateway/internal/adapter/storage/memory"
	pgStorage "storefront-gateway/internal/adapter/storage/postgres"
	redisStorage "storefront-gateway/internal/adapter/storage/redis"
	"storefront-gateway/internal/core/ports"
	"storefront-gateway/internal/observability"
	"storefront-gateway/internal/service"
	"storefront-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

const serviceName = "storefront-gateway"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("version", version).
		Msg("Starting Storefront Gateway")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing and metrics
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
		ServiceName: serviceName,
		Version:     version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}
	metrics := observability.NewMetrics()

	// Credential table
	hashSvc := service.NewArgon2HashService()
	seeds := make([]memory.SeedUser, 0, len(cfg.Auth.Users))
	for _, u := range cfg.Auth.Users {
		seeds = append(seeds, memory.SeedUser{Username: u.Username, Password: u.Password, Role: u.Role})
	}
	userRepo, err := memory.NewUserRepository(seeds, hashSvc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build credential table")
	}

	// Upstream adapters
	inventoryClient := inventory.NewClient(inventory.Config{
		BaseURL: cfg.Inventory.BaseURL,
		Token:   cfg.Inventory.Token,
		Timeout: cfg.Inventory.Timeout,
	}, metrics)

	fixedRate, err := service.NewFixedRateSource(cfg.Conversion.FallbackRate)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid conversion fallback rate")
	}
	rateSources := []ports.RateSource{fixedRate}
	if cfg.RateFeed.Enabled {
		live := ratefeed.NewSource(ratefeed.Config{URL: cfg.RateFeed.URL, Timeout: cfg.RateFeed.Timeout}, metrics)
		rateSources = []ports.RateSource{live, fixedRate}
	}

	paymentGateway := stripe.NewGateway(stripe.Config{
		SecretKey: cfg.Payment.SecretKey,
		BaseURL:   cfg.Payment.BaseURL,
		Timeout:   cfg.Payment.Timeout,
	}, metrics)

	// Optional infrastructure
	var (
		healthCheckers []ports.HealthChecker
		rateLimitStore *redisStorage.RateLimitStore
		auditRepo      ports.AuditRepository
	)

	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled, rate limiting is off")
	}

	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		repo := pgStorage.NewAuditRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare audit schema")
		}
		auditRepo = repo
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Business services
	authSvc := service.NewAuthService(userRepo, hashSvc, log)
	catalogSvc := service.NewCatalogService(inventoryClient, log)
	conversionSvc := service.NewConversionService(rateSources, metrics, log)
	settlementSvc := service.NewSettlementService(paymentGateway, cfg.Payment.Description, metrics, log)
	auditSvc := service.NewAuditService(auditRepo, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		CatalogSvc:     catalogSvc,
		ConversionSvc:  conversionSvc,
		SettlementSvc:  settlementSvc,
		AuditSvc:       auditSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Metrics:        metrics,
		ServiceName:    serviceName,
		Version:        version,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Tracer shutdown failed")
	}

	log.Info().Msg("Server exited")
}
