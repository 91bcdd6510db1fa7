// Package pricefeed fetches crypto USD prices from a CoinGecko-compatible
// simple-price endpoint.
package pricefeed

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/propchain/propchain-api/internal/adapter"
	"github.com/propchain/propchain-api/internal/ratelimit"
)

const PROVIDER_NAME = "pricefeed"

// Client defines the interface for price feed operations to enable mocking
type Client interface {
	// GetUSDPrices fetches the USD price for each feed asset ID.
	// IDs missing from the response are absent from the result map.
	GetUSDPrices(ctx context.Context, feedIDs []string) (map[string]float64, error)
}

// simplePriceResponse is keyed by feed asset ID, e.g. {"bitcoin":{"usd":43250}}
type simplePriceResponse map[string]map[string]float64

// FeedClient implements Client against the CoinGecko simple-price API
type FeedClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	apiURL         string
	apiKey         string
	json           adapter.JSON
}

// NewClient creates a new price feed client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, apiURL string, apiKey string, json adapter.JSON) Client {
	return &FeedClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		apiURL:         apiURL,
		apiKey:         apiKey,
		json:           json,
	}
}

// GetUSDPrices fetches the USD price for each feed asset ID
func (c *FeedClient) GetUSDPrices(ctx context.Context, feedIDs []string) (map[string]float64, error) {
	if len(feedIDs) == 0 {
		return map[string]float64{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(feedIDs, ","))
	query.Set("vs_currencies", "usd")
	requestURL := fmt.Sprintf("%s/simple/price?%s", c.apiURL, query.Encode())

	headers := map[string]string{}
	if c.apiKey != "" {
		headers["x-cg-demo-api-key"] = c.apiKey
	}

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, requestURL, headers)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call price feed API: %w", err)
	}

	var response simplePriceResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price feed response: %w", err)
	}

	prices := make(map[string]float64, len(response))
	for feedID, quote := range response {
		usd, ok := quote["usd"]
		if !ok || usd <= 0 {
			continue
		}
		prices[feedID] = usd
	}

	return prices, nil
}
