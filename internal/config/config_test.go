package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
auth:
  jwt_public_key: "test-key"
  api_keys:
    - key-one
    - key-two
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
price_feed:
  api_url: "https://feed.example.com"
  api_key: "feed-key"
  http_timeout: "5s"
currency_registry_path: "testdata/currencies.json"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "test-key", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, "https://feed.example.com", cfg.PriceFeed.APIURL)
				assert.Equal(t, "5s", cfg.PriceFeed.HTTPTimeout.String())
				assert.Equal(t, "testdata/currencies.json", cfg.CurrencyPath)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "LISTING_EVENTS", cfg.NATS.StreamName)
				assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.PriceFeed.APIURL)
				assert.Equal(t, "config/currencies.json", cfg.CurrencyPath)
			},
		},
		{
			name: "invalid yaml",
			configFile: `
				server:
				  port: invalid
			`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadRatesPollerConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *RatesPollerConfig)
	}{
		{
			name: "valid config file",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
price_feed:
  poll_interval: "1m"
rate_limiter:
  redis_addr: "localhost:6379"
  providers:
    pricefeed:
      requests_per_second: 2
      burst: 4
`,
			expectError: false,
			validate: func(t *testing.T, cfg *RatesPollerConfig) {
				assert.Equal(t, "1m0s", cfg.PriceFeed.PollInterval.String())
				assert.Equal(t, "localhost:6379", cfg.RateLimiter.RedisAddr)
				assert.Equal(t, 2, cfg.RateLimiter.Providers["pricefeed"].RequestsPerSecond)
				assert.Equal(t, 4, cfg.RateLimiter.Providers["pricefeed"].Burst)
				assert.True(t, cfg.RateLimiter.EnableLocalFallback)
			},
		},
		{
			name: "poller defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *RatesPollerConfig) {
				assert.Equal(t, "5m0s", cfg.PriceFeed.PollInterval.String())
				assert.Equal(t, "1h0m0s", cfg.PriceFeed.MaxSnapshotAge.String())
				assert.Equal(t, 5, cfg.Database.MaxOpenConns)
				assert.Equal(t, 5, cfg.RateLimiter.Providers["pricefeed"].RequestsPerSecond)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadRatesPollerConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
				if tt.validate != nil {
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "secret",
		DBName:   "listings",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=app password=secret dbname=listings sslmode=require",
		cfg.DSN())
}
