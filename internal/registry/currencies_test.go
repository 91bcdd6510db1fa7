package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propchain/propchain-api/internal/domain"
)

func writeCurrenciesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "currencies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadCurrencies(t *testing.T) {
	path := writeCurrenciesFile(t, `[
		{"code": "BTC", "feed_id": "bitcoin"},
		{"code": "eth", "feed_id": "ethereum"},
		{"code": "USDC", "stablecoin": true}
	]`)

	registry, err := LoadCurrencies(path)
	require.NoError(t, err)

	assert.True(t, registry.IsSupported(domain.CurrencyBTC))
	// lookup normalizes case
	assert.True(t, registry.IsSupported(domain.Currency("eth")))
	assert.False(t, registry.IsSupported(domain.Currency("DOGE")))

	feedID, ok := registry.FeedID(domain.CurrencyBTC)
	require.True(t, ok)
	assert.Equal(t, "bitcoin", feedID)

	// stablecoins without a feed ID are supported but not fetchable
	_, ok = registry.FeedID(domain.CurrencyUSDC)
	assert.False(t, ok)

	assert.True(t, registry.Stablecoin(domain.CurrencyUSDC))
	assert.False(t, registry.Stablecoin(domain.CurrencyBTC))

	assert.ElementsMatch(t,
		[]domain.Currency{domain.CurrencyBTC, domain.CurrencyETH, domain.CurrencyUSDC},
		registry.Codes(),
	)
}

func TestLoadCurrenciesErrors(t *testing.T) {
	_, err := LoadCurrencies(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadCurrencies(writeCurrenciesFile(t, `not json`))
	assert.Error(t, err)

	_, err = LoadCurrencies(writeCurrenciesFile(t, `[]`))
	assert.Error(t, err)

	_, err = LoadCurrencies(writeCurrenciesFile(t, `[{"code": "BTC"}]`))
	assert.Error(t, err)
}
