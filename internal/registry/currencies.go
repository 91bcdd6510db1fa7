package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/propchain/propchain-api/internal/domain"
)

// CurrencyRegistry defines the interface for supported-currency lookups
type CurrencyRegistry interface {
	// IsSupported checks if a currency code is accepted for listing prices
	IsSupported(code domain.Currency) bool

	// FeedID returns the price-feed asset identifier for a currency code
	FeedID(code domain.Currency) (string, bool)

	// Stablecoin reports whether a currency is USD-pegged
	Stablecoin(code domain.Currency) bool

	// Codes returns every supported currency code
	Codes() []domain.Currency
}

// CurrencyEntry describes one supported currency in the currencies.json file
type CurrencyEntry struct {
	// Code is the currency symbol used across the API (e.g., "BTC")
	Code string `json:"code"`
	// FeedID is the price feed's asset identifier (e.g., "bitcoin")
	FeedID string `json:"feed_id"`
	// Stablecoin marks USD-pegged assets; their rate is pinned to 1 when the
	// feed omits them
	Stablecoin bool `json:"stablecoin,omitempty"`
}

// currencyRegistry is the internal implementation of CurrencyRegistry
type currencyRegistry struct {
	entries []CurrencyEntry
	byCode  map[domain.Currency]CurrencyEntry
}

// LoadCurrencies loads the supported-currency registry from a JSON file
func LoadCurrencies(filePath string) (CurrencyRegistry, error) {
	data, err := os.ReadFile(filePath) //nolint:gosec,G304 // This should be a trusted file
	if err != nil {
		return nil, fmt.Errorf("failed to read currencies file: %w", err)
	}

	var entries []CurrencyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse currencies JSON: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("currencies file %s contains no entries", filePath)
	}

	registry := &currencyRegistry{
		entries: entries,
		byCode:  make(map[domain.Currency]CurrencyEntry, len(entries)),
	}
	for _, entry := range entries {
		code := domain.NormalizeCurrency(entry.Code)
		if entry.FeedID == "" && !entry.Stablecoin {
			return nil, fmt.Errorf("currency %s has no feed_id", code)
		}
		registry.byCode[code] = entry
	}

	return registry, nil
}

// IsSupported checks if a currency code is accepted for listing prices
func (r *currencyRegistry) IsSupported(code domain.Currency) bool {
	if r == nil {
		return false
	}
	_, ok := r.byCode[domain.NormalizeCurrency(string(code))]
	return ok
}

// FeedID returns the price-feed asset identifier for a currency code
func (r *currencyRegistry) FeedID(code domain.Currency) (string, bool) {
	if r == nil {
		return "", false
	}
	entry, ok := r.byCode[domain.NormalizeCurrency(string(code))]
	if !ok || entry.FeedID == "" {
		return "", false
	}
	return entry.FeedID, true
}

// Stablecoin reports whether a currency is USD-pegged
func (r *currencyRegistry) Stablecoin(code domain.Currency) bool {
	if r == nil {
		return false
	}
	entry, ok := r.byCode[domain.NormalizeCurrency(string(code))]
	return ok && entry.Stablecoin
}

// Codes returns every supported currency code
func (r *currencyRegistry) Codes() []domain.Currency {
	if r == nil {
		return nil
	}
	codes := make([]domain.Currency, 0, len(r.entries))
	for _, entry := range r.entries {
		codes = append(codes, domain.NormalizeCurrency(entry.Code))
	}
	return codes
}
