package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/config"
	"github.com/propchain/propchain-api/internal/logger"
	"github.com/propchain/propchain-api/internal/messaging"
	"github.com/propchain/propchain-api/internal/pricing"
	"github.com/propchain/propchain-api/internal/providers/jetstream"
	"github.com/propchain/propchain-api/internal/providers/pricefeed"
	"github.com/propchain/propchain-api/internal/ratelimit"
	"github.com/propchain/propchain-api/internal/registry"
	"github.com/propchain/propchain-api/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRatesPollerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "rates-poller",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Rates Poller")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Run schema migrations
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	httpClient := adapter.NewHTTPClient(cfg.PriceFeed.HTTPTimeout)

	// Load the supported-currency registry
	currencies, err := registry.LoadCurrencies(cfg.CurrencyPath)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load currency registry",
			zap.Error(err),
			zap.String("path", cfg.CurrencyPath))
	}
	logger.InfoCtx(ctx, "Loaded currency registry", zap.String("path", cfg.CurrencyPath))

	// Initialize the outbound rate-limit proxy; when Redis is unreachable it
	// degrades to the local fallback limiter
	redisClient := adapter.NewRedisClient(cfg.RateLimiter.RedisAddr, cfg.RateLimiter.RedisPassword, cfg.RateLimiter.RedisDB)
	rateLimitProxy, err := ratelimit.NewProxy(cfg.RateLimiter, redisClient, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limit proxy", zap.Error(err))
	}
	defer rateLimitProxy.Close()

	// Initialize the price feed client
	feed := pricefeed.NewClient(httpClient, rateLimitProxy, cfg.PriceFeed.APIURL, cfg.PriceFeed.APIKey, jsonAdapter)

	// Connect to NATS JetStream for rate refresh events
	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: "propchain-rates-poller",
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, rate refresh events will not be published")
	}

	// Initialize the poller
	poller := pricing.NewPoller(pricing.PollerConfig{
		Interval: cfg.PriceFeed.PollInterval,
	}, dataStore, feed, currencies, publisher, clock)

	logger.InfoCtx(ctx, "Initialized rates poller",
		zap.Duration("interval", cfg.PriceFeed.PollInterval),
		zap.Int("currencies", len(currencies.Codes())),
	)

	// Start the poller in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := poller.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "rates-poller"))
		cancel()
	}

	logger.Info("Rates poller stopped")
}
