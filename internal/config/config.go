package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// PriceFeedConfig holds price feed API configuration
type PriceFeedConfig struct {
	APIURL       string        `mapstructure:"api_url"`
	APIKey       string        `mapstructure:"api_key"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// MaxSnapshotAge is how old a stored snapshot may be before the API
	// reports it as stale and falls back to the static table
	MaxSnapshotAge time.Duration `mapstructure:"max_snapshot_age"`
}

// RateLimitConfig holds per-provider rate limit settings for outbound calls
type RateLimitConfig struct {
	RequestsPerSecond int           `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxQueueTime      time.Duration `mapstructure:"max_queue_time"`
}

// RateLimiterConfig holds configuration for the outbound rate-limiting proxy
type RateLimiterConfig struct {
	RedisAddr               string                     `mapstructure:"redis_addr"`
	RedisPassword           string                     `mapstructure:"redis_password"`
	RedisDB                 int                        `mapstructure:"redis_db"`
	RedisKeyPrefix          string                     `mapstructure:"redis_key_prefix"`
	EnableLocalFallback     bool                       `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64                    `mapstructure:"local_fallback_multiplier"`
	MaxWorkers              int                        `mapstructure:"max_workers"`
	MaxQueueSize            int                        `mapstructure:"max_queue_size"`
	Providers               map[string]RateLimitConfig `mapstructure:"providers"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Auth         AuthConfig      `mapstructure:"auth"`
	NATS         NATSConfig      `mapstructure:"nats"`
	PriceFeed    PriceFeedConfig `mapstructure:"price_feed"`
	CurrencyPath string          `mapstructure:"currency_registry_path"`
}

// RatesPollerConfig holds configuration for the rates-poller worker
type RatesPollerConfig struct {
	BaseConfig   `mapstructure:",squash"`
	Database     DatabaseConfig    `mapstructure:"database"`
	NATS         NATSConfig        `mapstructure:"nats"`
	PriceFeed    PriceFeedConfig   `mapstructure:"price_feed"`
	RateLimiter  RateLimiterConfig `mapstructure:"rate_limiter"`
	CurrencyPath string            `mapstructure:"currency_registry_path"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LISTING_EVENTS")
	v.SetDefault("price_feed.api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("price_feed.http_timeout", "10s")
	v.SetDefault("price_feed.max_snapshot_age", "1h")
	v.SetDefault("currency_registry_path", "config/currencies.json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadRatesPollerConfig loads configuration for the rates-poller worker
func LoadRatesPollerConfig(configFile string, envPath string) (*RatesPollerConfig, error) {
	v := configureViper("rates-poller", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LISTING_EVENTS")
	v.SetDefault("price_feed.api_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("price_feed.http_timeout", "10s")
	v.SetDefault("price_feed.poll_interval", "5m")
	v.SetDefault("price_feed.max_snapshot_age", "1h")
	v.SetDefault("rate_limiter.enable_local_fallback", true)
	v.SetDefault("rate_limiter.providers.pricefeed.requests_per_second", 5)
	v.SetDefault("rate_limiter.providers.pricefeed.burst", 10)
	v.SetDefault("currency_registry_path", "config/currencies.json")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config RatesPollerConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("PROPCHAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Price feed
		"price_feed.api_url",
		"price_feed.api_key",
		"price_feed.http_timeout",
		"price_feed.poll_interval",
		"price_feed.max_snapshot_age",
		// Rate limiter
		"rate_limiter.redis_addr",
		"rate_limiter.redis_password",
		"rate_limiter.redis_db",
		"rate_limiter.redis_key_prefix",
		"rate_limiter.enable_local_fallback",
		"rate_limiter.local_fallback_multiplier",
		"rate_limiter.max_workers",
		"rate_limiter.max_queue_size",
		// Registry
		"currency_registry_path",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
