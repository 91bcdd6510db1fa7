// Package pricing converts crypto-denominated amounts into a common reference
// unit (USD major units) so listings priced in different currencies can be
// compared and filtered together.
package pricing

import (
	"time"

	"github.com/propchain/propchain-api/internal/domain"
)

// RateSource identifies where the active rate table came from
type RateSource string

const (
	// RateSourceFeed means rates came from a live price-feed fetch
	RateSourceFeed RateSource = "feed"
	// RateSourceSnapshot means rates came from the stored snapshot
	RateSourceSnapshot RateSource = "snapshot"
	// RateSourceFallback means the static fallback table is in use
	RateSourceFallback RateSource = "fallback"
)

// RateTable maps a currency code to its USD price for one whole unit
type RateTable map[domain.Currency]float64

// Rates bundles a rate table with its provenance
type Rates struct {
	Table     RateTable
	Source    RateSource
	FetchedAt time.Time
}

// FallbackRates is the static table used when neither the price feed nor a
// stored snapshot is available. Values are deliberately coarse; they exist so
// price filtering degrades instead of breaking.
var FallbackRates = RateTable{
	domain.CurrencyBTC:  43250,
	domain.CurrencyETH:  2280,
	domain.CurrencySOL:  98,
	domain.CurrencyUSDC: 1,
	domain.CurrencyUSDT: 1,
	domain.CurrencyDAI:  1,
}

// Rate returns the USD price for a currency and whether it was present
func (t RateTable) Rate(code domain.Currency) (float64, bool) {
	rate, ok := t[code]
	if !ok || rate <= 0 {
		return 0, false
	}
	return rate, true
}

// RateOrDefault returns the USD price for a currency, falling back to a
// neutral rate of 1 when the code is absent. Callers that need to distinguish
// "converted" from "using neutral fallback" use Rate instead.
func (t RateTable) RateOrDefault(code domain.Currency) float64 {
	if rate, ok := t.Rate(code); ok {
		return rate
	}
	return 1
}

// Convert converts an amount from one currency into another via their USD
// rates. Currencies missing from the table convert at a neutral rate of 1, so
// conversion never fails; it degrades.
func Convert(amount float64, from, to domain.Currency, table RateTable) float64 {
	if from == to {
		return amount
	}
	return amount * table.RateOrDefault(from) / table.RateOrDefault(to)
}

// NormalizeUSD converts an amount into USD major units
func NormalizeUSD(amount float64, from domain.Currency, table RateTable) float64 {
	return amount * table.RateOrDefault(from)
}

// Merge returns a copy of t with entries from other overriding t's entries.
// Used to overlay a partial feed response onto the fallback table so every
// registered currency keeps some rate.
func (t RateTable) Merge(other RateTable) RateTable {
	merged := make(RateTable, len(t)+len(other))
	for code, rate := range t {
		merged[code] = rate
	}
	for code, rate := range other {
		merged[code] = rate
	}
	return merged
}
