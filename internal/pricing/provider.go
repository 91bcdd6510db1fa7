package pricing

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/logger"
	"github.com/propchain/propchain-api/internal/store"
)

// Provider supplies the rate table used to price listings
type Provider interface {
	// Current returns the freshest usable rates. It never fails; when no
	// snapshot is usable it degrades to the static fallback table.
	Current(ctx context.Context) Rates
}

// SnapshotProvider reads the rate snapshot the poller writes to the store.
// Snapshots older than maxAge are ignored. Reads are cached briefly so request
// handling does not hit the database on every call.
type SnapshotProvider struct {
	store    store.Store
	clock    adapter.Clock
	maxAge   time.Duration
	cacheTTL time.Duration

	mu        sync.Mutex
	cached    Rates
	cachedAt  time.Time
	haveCache bool
}

// NewSnapshotProvider creates a provider backed by the stored rate snapshot
func NewSnapshotProvider(s store.Store, clock adapter.Clock, maxAge time.Duration) *SnapshotProvider {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &SnapshotProvider{
		store:    s,
		clock:    clock,
		maxAge:   maxAge,
		cacheTTL: 30 * time.Second,
	}
}

// Current returns the freshest usable rates
func (p *SnapshotProvider) Current(ctx context.Context) Rates {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.haveCache && p.clock.Since(p.cachedAt) < p.cacheTTL {
		return p.cached
	}

	rates := p.load(ctx)
	p.cached = rates
	p.cachedAt = p.clock.Now()
	p.haveCache = true

	return rates
}

func (p *SnapshotProvider) load(ctx context.Context) Rates {
	fallback := Rates{
		Table:  FallbackRates,
		Source: RateSourceFallback,
	}

	rows, err := p.store.GetExchangeRates(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read rate snapshot, using fallback rates", zap.Error(err))
		return fallback
	}

	table := make(RateTable, len(rows))
	var newest time.Time
	for _, row := range rows {
		if p.clock.Since(row.FetchedAt) > p.maxAge {
			continue
		}
		table[row.Currency] = row.USDPrice
		if row.FetchedAt.After(newest) {
			newest = row.FetchedAt
		}
	}

	if len(table) == 0 {
		return fallback
	}

	// overlay onto the fallback so currencies the poller missed keep a rate
	return Rates{
		Table:     FallbackRates.Merge(table),
		Source:    RateSourceSnapshot,
		FetchedAt: newest,
	}
}
