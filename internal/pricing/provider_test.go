package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store"
)

// fakeClock lets tests move time forward
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time                         { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration        { return c.now.Sub(t) }
func (c *fakeClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (c *fakeClock) NewTicker(d time.Duration) *time.Ticker { return time.NewTicker(d) }

func TestSnapshotProviderUsesStoredRates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}

	require.NoError(t, s.UpsertExchangeRates(ctx, []store.RateUpsert{
		{Currency: domain.CurrencyBTC, USDPrice: 50000, FetchedAt: clock.now.Add(-time.Minute)},
	}))

	provider := NewSnapshotProvider(s, clock, time.Hour)
	rates := provider.Current(ctx)

	assert.Equal(t, RateSourceSnapshot, rates.Source)
	assert.Equal(t, float64(50000), rates.Table[domain.CurrencyBTC])
	// currencies the snapshot misses keep their fallback rate
	assert.Equal(t, FallbackRates[domain.CurrencyETH], rates.Table[domain.CurrencyETH])
}

func TestSnapshotProviderFallsBackWhenEmpty(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	provider := NewSnapshotProvider(store.NewMemoryStore(), clock, time.Hour)

	rates := provider.Current(context.Background())
	assert.Equal(t, RateSourceFallback, rates.Source)
	assert.Equal(t, FallbackRates[domain.CurrencyBTC], rates.Table[domain.CurrencyBTC])
}

func TestSnapshotProviderIgnoresStaleRates(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}

	require.NoError(t, s.UpsertExchangeRates(ctx, []store.RateUpsert{
		{Currency: domain.CurrencyBTC, USDPrice: 50000, FetchedAt: clock.now.Add(-2 * time.Hour)},
	}))

	provider := NewSnapshotProvider(s, clock, time.Hour)
	rates := provider.Current(ctx)

	assert.Equal(t, RateSourceFallback, rates.Source)
	assert.Equal(t, FallbackRates[domain.CurrencyBTC], rates.Table[domain.CurrencyBTC])
}

func TestSnapshotProviderCachesReads(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}

	provider := NewSnapshotProvider(s, clock, time.Hour)
	first := provider.Current(ctx)
	assert.Equal(t, RateSourceFallback, first.Source)

	// a snapshot written within the cache TTL is not picked up yet
	require.NoError(t, s.UpsertExchangeRates(ctx, []store.RateUpsert{
		{Currency: domain.CurrencyBTC, USDPrice: 50000, FetchedAt: clock.now},
	}))
	cached := provider.Current(ctx)
	assert.Equal(t, RateSourceFallback, cached.Source)

	// after the TTL expires the fresh snapshot wins
	clock.now = clock.now.Add(time.Minute)
	refreshed := provider.Current(ctx)
	assert.Equal(t, RateSourceSnapshot, refreshed.Source)
	assert.Equal(t, float64(50000), refreshed.Table[domain.CurrencyBTC])
}
