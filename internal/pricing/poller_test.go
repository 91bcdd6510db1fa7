package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/store"
)

// fakeFeed returns canned prices keyed by feed asset ID
type fakeFeed struct {
	prices map[string]float64
	err    error
}

func (f *fakeFeed) GetUSDPrices(_ context.Context, _ []string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.prices, nil
}

// fakeRegistry is a fixed currency registry for poller tests
type fakeRegistry struct {
	feedIDs     map[domain.Currency]string
	stablecoins map[domain.Currency]bool
}

func (r *fakeRegistry) IsSupported(code domain.Currency) bool {
	_, ok := r.feedIDs[code]
	return ok || r.stablecoins[code]
}

func (r *fakeRegistry) FeedID(code domain.Currency) (string, bool) {
	feedID, ok := r.feedIDs[code]
	return feedID, ok && feedID != ""
}

func (r *fakeRegistry) Stablecoin(code domain.Currency) bool {
	return r.stablecoins[code]
}

func (r *fakeRegistry) Codes() []domain.Currency {
	codes := make([]domain.Currency, 0, len(r.feedIDs))
	for code := range r.feedIDs {
		codes = append(codes, code)
	}
	return codes
}

// capturingPublisher records published events
type capturingPublisher struct {
	events []*domain.ListingEvent
}

func (p *capturingPublisher) PublishEvent(_ context.Context, event *domain.ListingEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() {}

func TestPollerRefreshesSnapshot(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	publisher := &capturingPublisher{}

	feed := &fakeFeed{prices: map[string]float64{
		"bitcoin":  44000,
		"ethereum": 2300,
	}}
	reg := &fakeRegistry{
		feedIDs: map[domain.Currency]string{
			domain.CurrencyBTC:  "bitcoin",
			domain.CurrencyETH:  "ethereum",
			domain.CurrencyUSDC: "usd-coin",
		},
		stablecoins: map[domain.Currency]bool{domain.CurrencyUSDC: true},
	}

	poller := NewPoller(PollerConfig{Interval: time.Minute}, memStore, feed, reg, publisher, clock)
	require.NoError(t, poller.pollOnce(ctx))

	stored, err := memStore.GetExchangeRates(ctx)
	require.NoError(t, err)
	byCurrency := map[domain.Currency]float64{}
	for _, rate := range stored {
		byCurrency[rate.Currency] = rate.USDPrice
	}
	assert.InDelta(t, 44000, byCurrency[domain.CurrencyBTC], 1e-9)
	assert.InDelta(t, 2300, byCurrency[domain.CurrencyETH], 1e-9)
	// the feed omitted usd-coin; stablecoins are pinned to 1
	assert.InDelta(t, 1, byCurrency[domain.CurrencyUSDC], 1e-9)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventRatesUpdated, publisher.events[0].EventType)
	assert.ElementsMatch(t,
		[]domain.Currency{domain.CurrencyBTC, domain.CurrencyETH, domain.CurrencyUSDC},
		publisher.events[0].Currencies)
}

func TestPollerSkipsOmittedNonStablecoin(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	clock := &fakeClock{now: time.Now()}

	feed := &fakeFeed{prices: map[string]float64{"bitcoin": 44000}}
	reg := &fakeRegistry{
		feedIDs: map[domain.Currency]string{
			domain.CurrencyBTC: "bitcoin",
			domain.CurrencySOL: "solana",
		},
		stablecoins: map[domain.Currency]bool{},
	}

	poller := NewPoller(PollerConfig{}, memStore, feed, reg, nil, clock)
	require.NoError(t, poller.pollOnce(ctx))

	stored, err := memStore.GetExchangeRates(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.CurrencyBTC, stored[0].Currency)
}

func TestPollerFeedFailure(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()
	clock := &fakeClock{now: time.Now()}

	feed := &fakeFeed{err: errors.New("feed unavailable")}
	reg := &fakeRegistry{
		feedIDs:     map[domain.Currency]string{domain.CurrencyBTC: "bitcoin"},
		stablecoins: map[domain.Currency]bool{},
	}

	poller := NewPoller(PollerConfig{}, memStore, feed, reg, nil, clock)
	err := poller.pollOnce(ctx)
	require.Error(t, err)

	stored, storeErr := memStore.GetExchangeRates(ctx)
	require.NoError(t, storeErr)
	assert.Empty(t, stored)
}
