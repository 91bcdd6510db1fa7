package pricing

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/domain"
	"github.com/propchain/propchain-api/internal/logger"
	"github.com/propchain/propchain-api/internal/messaging"
	"github.com/propchain/propchain-api/internal/providers/pricefeed"
	"github.com/propchain/propchain-api/internal/registry"
	"github.com/propchain/propchain-api/internal/store"
)

// PollerConfig holds the rates poller configuration
type PollerConfig struct {
	// Interval between feed fetches
	Interval time.Duration
}

// Poller periodically fetches USD prices for every registered currency and
// writes them to the exchange rate snapshot the API reads from. Stablecoins
// missing from the feed response are pinned to 1.
type Poller struct {
	config     PollerConfig
	store      store.Store
	feed       pricefeed.Client
	currencies registry.CurrencyRegistry
	publisher  messaging.Publisher
	clock      adapter.Clock
}

// NewPoller creates a rates poller. The publisher may be nil; rate refresh
// events are then skipped.
func NewPoller(cfg PollerConfig, s store.Store, feed pricefeed.Client, currencies registry.CurrencyRegistry, publisher messaging.Publisher, clock adapter.Clock) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	return &Poller{
		config:     cfg,
		store:      s,
		feed:       feed,
		currencies: currencies,
		publisher:  publisher,
		clock:      clock,
	}
}

// Start polls once immediately, then on every tick until the context is
// canceled. Individual poll failures are logged and retried on the next tick.
func (p *Poller) Start(ctx context.Context) error {
	if err := p.pollOnce(ctx); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Initial rates poll failed"))
	}

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.pollOnce(ctx); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Rates poll failed"))
			}
		}
	}
}

// pollOnce fetches the feed and upserts the snapshot
func (p *Poller) pollOnce(ctx context.Context) error {
	codes := p.currencies.Codes()

	feedIDs := make([]string, 0, len(codes))
	for _, code := range codes {
		if feedID, ok := p.currencies.FeedID(code); ok {
			feedIDs = append(feedIDs, feedID)
		}
	}

	prices, err := p.feed.GetUSDPrices(ctx, feedIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch feed prices: %w", err)
	}

	now := p.clock.Now().UTC()
	upserts := make([]store.RateUpsert, 0, len(codes))
	updated := make([]domain.Currency, 0, len(codes))

	for _, code := range codes {
		price, fetched := 0.0, false
		if feedID, ok := p.currencies.FeedID(code); ok {
			price, fetched = prices[feedID]
		}
		if !fetched {
			if !p.currencies.Stablecoin(code) {
				logger.WarnCtx(ctx, "Feed omitted currency, keeping previous rate",
					zap.String("currency", string(code)))
				continue
			}
			price = 1
		}

		upserts = append(upserts, store.RateUpsert{
			Currency:  code,
			USDPrice:  price,
			FetchedAt: now,
		})
		updated = append(updated, code)
	}

	if len(upserts) == 0 {
		return fmt.Errorf("feed returned no usable prices for %d currencies", len(codes))
	}

	if err := p.store.UpsertExchangeRates(ctx, upserts); err != nil {
		return fmt.Errorf("failed to store exchange rates: %w", err)
	}

	logger.InfoCtx(ctx, "Refreshed exchange rates",
		zap.Int("currencies", len(upserts)),
		zap.Time("fetched_at", now),
	)

	p.publishRatesEvent(ctx, updated, now)

	return nil
}

// publishRatesEvent publishes best-effort; a broker outage never fails a poll
func (p *Poller) publishRatesEvent(ctx context.Context, currencies []domain.Currency, at time.Time) {
	if p.publisher == nil {
		return
	}

	event := domain.NewListingEvent(domain.EventRatesUpdated, at)
	event.Currencies = currencies

	if err := p.publisher.PublishEvent(ctx, &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to publish rates event"))
	}
}
