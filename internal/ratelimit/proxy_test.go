package ratelimit

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/config"
)

// fakeRedisClient simulates Redis without a live server
type fakeRedisClient struct {
	pingErr  error
	allowErr error
	allowed  int64
}

func (f *fakeRedisClient) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if f.pingErr != nil {
		cmd.SetErr(f.pingErr)
	} else {
		cmd.SetVal("PONG")
	}
	return cmd
}

func (f *fakeRedisClient) NewRateLimiter() adapter.RedisRateLimiter {
	return &fakeRateLimiter{client: f}
}

func (f *fakeRedisClient) Close() error { return nil }

type fakeRateLimiter struct {
	client *fakeRedisClient
}

func (f *fakeRateLimiter) Allow(_ context.Context, _ string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	if f.client.allowErr != nil {
		return nil, f.client.allowErr
	}
	atomic.AddInt64(&f.client.allowed, 1)
	return &redis_rate.Result{Limit: limit, Allowed: 1, Remaining: limit.Rate - 1}, nil
}

func testConfig() config.RateLimiterConfig {
	return config.RateLimiterConfig{
		RedisAddr:               "localhost:6379",
		EnableLocalFallback:     true,
		LocalFallbackMultiplier: 0.5,
		MaxWorkers:              4,
		MaxQueueSize:            16,
		Providers: map[string]config.RateLimitConfig{
			"pricefeed": {
				RequestsPerSecond: 50,
				Burst:             50,
				MaxQueueTime:      5 * time.Second,
			},
		},
	}
}

func TestNewProxyValidation(t *testing.T) {
	rc := &fakeRedisClient{}
	clock := adapter.NewClock()

	_, err := NewProxy(config.RateLimiterConfig{}, rc, clock)
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Providers = map[string]config.RateLimitConfig{
		"pricefeed": {RequestsPerSecond: 0},
	}
	_, err = NewProxy(cfg, rc, clock)
	assert.Error(t, err)
}

func TestNewProxyRedisDownWithoutFallback(t *testing.T) {
	rc := &fakeRedisClient{pingErr: fmt.Errorf("connection refused")}
	cfg := testConfig()
	cfg.EnableLocalFallback = false

	_, err := NewProxy(cfg, rc, adapter.NewClock())
	assert.Error(t, err)
}

func TestRequestThroughDistributedLimiter(t *testing.T) {
	rc := &fakeRedisClient{}
	p, err := NewProxy(testConfig(), rc, adapter.NewClock())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	value, err := Request(context.Background(), p, "pricefeed", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, int64(1), atomic.LoadInt64(&rc.allowed))
}

func TestRequestFallsBackWhenRedisFails(t *testing.T) {
	rc := &fakeRedisClient{allowErr: fmt.Errorf("redis down")}
	p, err := NewProxy(testConfig(), rc, adapter.NewClock())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	value, err := Request(context.Background(), p, "pricefeed", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestRequestUnknownProvider(t *testing.T) {
	p, err := NewProxy(testConfig(), &fakeRedisClient{}, adapter.NewClock())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	_, err = p.Request(context.Background(), "unknown", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestRequestAfterClose(t *testing.T) {
	p, err := NewProxy(testConfig(), &fakeRedisClient{}, adapter.NewClock())
	require.NoError(t, err)
	require.NoError(t, p.Close())

	_, err = p.Request(context.Background(), "pricefeed", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.Error(t, err)
}

func TestRequestNilProxyExecutesDirectly(t *testing.T) {
	value, err := Request(context.Background(), nil, "pricefeed", func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", value)
}

func TestRequestPropagatesFunctionError(t *testing.T) {
	p, err := NewProxy(testConfig(), &fakeRedisClient{}, adapter.NewClock())
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	_, err = Request(context.Background(), p, "pricefeed", func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("vendor exploded")
	})
	assert.ErrorContains(t, err, "vendor exploded")
}
