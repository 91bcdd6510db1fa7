package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHTTPClient records the requested URL and returns a canned body
type fakeHTTPClient struct {
	lastURL     string
	lastHeaders map[string]string
	body        []byte
	err         error
}

func (f *fakeHTTPClient) Get(ctx context.Context, url string, headers map[string]string, result interface{}) error {
	body, err := f.GetBytes(ctx, url, headers)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, result)
}

func (f *fakeHTTPClient) GetBytes(_ context.Context, url string, headers map[string]string) ([]byte, error) {
	f.lastURL = url
	f.lastHeaders = headers
	return f.body, f.err
}

type realJSON struct{}

func (realJSON) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (realJSON) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func TestGetUSDPrices(t *testing.T) {
	httpClient := &fakeHTTPClient{
		body: []byte(`{"bitcoin":{"usd":43250.5},"ethereum":{"usd":2280},"solana":{}}`),
	}
	client := NewClient(httpClient, nil, "https://api.coingecko.com/api/v3", "test-key", realJSON{})

	prices, err := client.GetUSDPrices(context.Background(), []string{"bitcoin", "ethereum", "solana"})
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"bitcoin":  43250.5,
		"ethereum": 2280,
	}, prices)

	assert.Contains(t, httpClient.lastURL, "/simple/price?")
	assert.Contains(t, httpClient.lastURL, "ids=bitcoin%2Cethereum%2Csolana")
	assert.Contains(t, httpClient.lastURL, "vs_currencies=usd")
	assert.Equal(t, "test-key", httpClient.lastHeaders["x-cg-demo-api-key"])
}

func TestGetUSDPricesNoAPIKey(t *testing.T) {
	httpClient := &fakeHTTPClient{body: []byte(`{}`)}
	client := NewClient(httpClient, nil, "https://api.coingecko.com/api/v3", "", realJSON{})

	_, err := client.GetUSDPrices(context.Background(), []string{"bitcoin"})
	require.NoError(t, err)
	_, hasHeader := httpClient.lastHeaders["x-cg-demo-api-key"]
	assert.False(t, hasHeader)
}

func TestGetUSDPricesEmptyInput(t *testing.T) {
	client := NewClient(&fakeHTTPClient{}, nil, "https://api.coingecko.com/api/v3", "", realJSON{})

	prices, err := client.GetUSDPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, prices)
}

func TestGetUSDPricesHTTPError(t *testing.T) {
	httpClient := &fakeHTTPClient{err: fmt.Errorf("connection reset")}
	client := NewClient(httpClient, nil, "https://api.coingecko.com/api/v3", "", realJSON{})

	_, err := client.GetUSDPrices(context.Background(), []string{"bitcoin"})
	assert.ErrorContains(t, err, "failed to call price feed API")
}

func TestGetUSDPricesMalformedBody(t *testing.T) {
	httpClient := &fakeHTTPClient{body: []byte(`not json`)}
	client := NewClient(httpClient, nil, "https://api.coingecko.com/api/v3", "", realJSON{})

	_, err := client.GetUSDPrices(context.Background(), []string{"bitcoin"})
	assert.ErrorContains(t, err, "failed to unmarshal")
}

func TestGetUSDPricesIgnoresNonPositive(t *testing.T) {
	httpClient := &fakeHTTPClient{body: []byte(`{"bitcoin":{"usd":0},"ethereum":{"usd":-5}}`)}
	client := NewClient(httpClient, nil, "https://api.coingecko.com/api/v3", "", realJSON{})

	prices, err := client.GetUSDPrices(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Empty(t, prices)
}
