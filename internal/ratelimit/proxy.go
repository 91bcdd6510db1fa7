// Package ratelimit throttles outbound vendor calls. Limits are enforced
// through Redis so every poller replica shares one budget; a local limiter
// takes over when Redis is down.
package ratelimit

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/config"
	"github.com/propchain/propchain-api/internal/logger"
)

// RequestFunc performs the actual vendor request
type RequestFunc func(ctx context.Context) (interface{}, error)

type requestResult struct {
	value interface{}
	err   error
}

// Proxy defines the interface for the rate-limiting proxy
type Proxy interface {
	// Request submits a rate-limited request for execution
	Request(ctx context.Context, providerName string, fn RequestFunc) (interface{}, error)

	// Close gracefully shuts down the proxy
	Close() error
}

type proxy struct {
	config         config.RateLimiterConfig
	pool           pond.ResultPool[*requestResult]
	limiters       map[string]*providerLimiter
	redis          adapter.RedisClient
	clock          adapter.Clock
	closed         atomic.Bool
	closeOnce      sync.Once
	redisAvailable atomic.Bool
}

// providerLimiter holds the rate limiting state for a single provider
type providerLimiter struct {
	name               string
	config             config.RateLimitConfig
	distributedLimiter adapter.RedisRateLimiter
	// localLimiter enforces a reduced budget when Redis is unavailable
	localLimiter *rate.Limiter
	// preFilterLimiter throttles before hitting Redis to reduce its load
	preFilterLimiter *rate.Limiter
}

// NewProxy creates a new rate-limiting proxy
func NewProxy(cfg config.RateLimiterConfig, rc adapter.RedisClient, clock adapter.Clock) (Proxy, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx).Err(); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	distributedLimiter := rc.NewRateLimiter()

	limiters := make(map[string]*providerLimiter)
	for name, providerConfig := range cfg.Providers {
		// fallback runs at a fraction of the shared budget so multiple
		// replicas falling back together stay under the vendor limit
		localRate := max(float64(providerConfig.RequestsPerSecond)*cfg.LocalFallbackMultiplier, 1.0)

		limiters[name] = &providerLimiter{
			name:               name,
			config:             providerConfig,
			distributedLimiter: distributedLimiter,
			localLimiter:       rate.NewLimiter(rate.Limit(localRate), providerConfig.Burst),
			preFilterLimiter:   rate.NewLimiter(rate.Limit(providerConfig.RequestsPerSecond), providerConfig.Burst),
		}
	}

	pool := pond.NewResultPool[*requestResult](
		cfg.MaxWorkers,
		pond.WithQueueSize(cfg.MaxQueueSize),
	)

	p := &proxy{
		config:   cfg,
		pool:     pool,
		limiters: limiters,
		redis:    rc,
		clock:    clock,
	}
	p.redisAvailable.Store(redisAvailable)

	go p.monitorRedisHealth()

	logger.Info("Rate limit proxy initialized",
		zap.Int("max_workers", cfg.MaxWorkers),
		zap.Int("max_queue_size", cfg.MaxQueueSize),
		zap.Int("providers", len(cfg.Providers)),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return p, nil
}

// Request submits a rate-limited request and returns a typed result.
// A nil proxy executes the function directly; local development runs
// without Redis that way.
func Request[T any](ctx context.Context, p Proxy, providerName string, fn func(ctx context.Context) (T, error)) (T, error) {
	if p == nil {
		return fn(ctx)
	}

	var zero T
	result, err := p.Request(ctx, providerName, func(ctx context.Context) (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		return zero, err
	}
	return result.(T), nil
}

// Request blocks until a token is acquired and the request completes, the
// context is canceled, or the maximum queue time is exceeded.
func (p *proxy) Request(ctx context.Context, providerName string, fn RequestFunc) (interface{}, error) {
	if p.closed.Load() {
		return nil, fmt.Errorf("proxy is closed")
	}

	limiter, ok := p.limiters[providerName]
	if !ok {
		return nil, fmt.Errorf("provider '%s' not configured", providerName)
	}

	queueCtx, cancel := context.WithTimeout(ctx, limiter.config.MaxQueueTime)
	defer cancel()

	resultTask := p.pool.Submit(func() *requestResult {
		value, err := p.executeWithRateLimit(queueCtx, limiter, fn)
		return &requestResult{value: value, err: err}
	})

	result, err := resultTask.Wait()
	if err != nil {
		return nil, err
	}
	if result.err != nil {
		return nil, result.err
	}
	return result.value, nil
}

func (p *proxy) executeWithRateLimit(ctx context.Context, limiter *providerLimiter, fn RequestFunc) (interface{}, error) {
	if err := p.acquireToken(ctx, limiter); err != nil {
		return nil, err
	}

	// no timeout wrapper here; the HTTP adapter owns request timeouts
	return fn(ctx)
}

// acquireToken blocks until a rate limit token is available
func (p *proxy) acquireToken(ctx context.Context, limiter *providerLimiter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if p.redisAvailable.Load() {
			allowed, retryAfter, err := p.tryDistributedLimit(ctx, limiter)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				p.redisAvailable.Store(false)

				if !p.config.EnableLocalFallback {
					return fmt.Errorf("redis rate limiter unavailable: %w", err)
				}

				logger.Warn("Redis rate limiter error, falling back to local",
					zap.String("provider", limiter.name),
					zap.Error(err),
				)
			} else if allowed {
				return nil
			} else if retryAfter > 0 {
				// jitter spreads retry attempts across waiters (50-150%)
				jitter := time.Duration(float64(retryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-p.clock.After(jitter):
					continue
				}
			}
		}

		if !p.redisAvailable.Load() && p.config.EnableLocalFallback {
			return limiter.localLimiter.Wait(ctx)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.clock.After(100 * time.Millisecond):
		}
	}
}

// tryDistributedLimit attempts to acquire a token from the Redis limiter
func (p *proxy) tryDistributedLimit(ctx context.Context, limiter *providerLimiter) (bool, time.Duration, error) {
	if limiter.distributedLimiter == nil {
		return false, 0, fmt.Errorf("distributed limiter not available")
	}

	if err := limiter.preFilterLimiter.Wait(ctx); err != nil {
		return false, 0, err
	}

	redisKey := fmt.Sprintf("%s%s", p.config.RedisKeyPrefix, limiter.name)

	res, err := limiter.distributedLimiter.Allow(ctx, redisKey, redis_rate.PerSecond(limiter.config.RequestsPerSecond))
	if err != nil {
		return false, 0, err
	}

	if res.Allowed == 0 {
		logger.Debug("Rate limit token unavailable, waiting",
			zap.String("provider", limiter.name),
			zap.Duration("retry_after", res.RetryAfter),
			zap.Int("remaining", res.Remaining),
		)
		return false, res.RetryAfter, nil
	}

	return true, 0, nil
}

// monitorRedisHealth periodically checks Redis and flips availability back
// when the connection recovers
func (p *proxy) monitorRedisHealth() {
	ticker := p.clock.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		if p.closed.Load() {
			return
		}

		<-ticker.C

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := p.redis.Ping(ctx).Err()
		cancel()

		redisAvailable := err == nil
		wasAvailable := p.redisAvailable.Load()
		p.redisAvailable.Store(redisAvailable)

		if !wasAvailable && redisAvailable {
			logger.Info("Redis connection restored")
		}
	}
}

// Close waits for in-flight requests to complete, then releases Redis
func (p *proxy) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed.Store(true)

		logger.Info("Shutting down rate limit proxy")

		tasks := p.pool.Stop()
		if errTasks := tasks.Wait(); errTasks != nil {
			logger.Warn("Error waiting for pool tasks to complete", zap.Error(errTasks))
			err = errTasks
		}

		if closeErr := p.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}

		logger.Info("Rate limit proxy shutdown complete")
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *config.RateLimiterConfig) error {
	if cfg.RedisAddr == "" {
		return fmt.Errorf("redis_addr is required")
	}

	if len(cfg.Providers) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}

	for name, provider := range cfg.Providers {
		if provider.RequestsPerSecond <= 0 {
			return fmt.Errorf("provider %s: requests_per_second must be positive", name)
		}

		if provider.Burst <= 0 {
			provider.Burst = provider.RequestsPerSecond
		}

		if provider.MaxQueueTime <= 0 {
			provider.MaxQueueTime = 5 * time.Minute
		}

		cfg.Providers[name] = provider
	}

	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "propchain:limiter:"
	}

	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = runtime.NumCPU() * 10
	}

	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 10000
	}

	return nil
}
