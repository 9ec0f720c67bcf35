package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/giquina/armora-sub001/internal/domain/catalog"
	"github.com/giquina/armora-sub001/internal/domain/risk"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Booking  BookingConfig  `yaml:"booking"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Payment  PaymentConfig  `yaml:"payment"`
	Storage  StorageConfig  `yaml:"storage"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Postgres PostgresConfig `yaml:"postgres"`
	Officers OfficersConfig `yaml:"officers"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent reads.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AuthConfig holds token signing settings.
type AuthConfig struct {
	Secret          string        `yaml:"secret"`
	TokenTTL        time.Duration `yaml:"tokenTtl"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTtl"`
}

// BookingConfig controls the booking flow.
type BookingConfig struct {
	Terms        []string      `yaml:"terms"`
	RecentLimit  int           `yaml:"recentLimit"`
	HistoryLimit int           `yaml:"historyLimit"`
	SessionTTL   time.Duration `yaml:"sessionTtl"`
}

// CatalogConfig lists the tiers and scenarios offered.
type CatalogConfig struct {
	Tiers     []TierConfig     `yaml:"tiers"`
	Scenarios []ScenarioConfig `yaml:"scenarios"`
}

// TierConfig describes one service tier. hourlyRate is parsed as an exact
// decimal.
type TierConfig struct {
	ID                   string          `yaml:"id"`
	DisplayName          string          `yaml:"displayName"`
	HourlyRate           decimal.Decimal `yaml:"hourlyRate"`
	MinimumBillableHours int             `yaml:"minimumBillableHours"`
}

// ScenarioConfig describes one journey scenario.
type ScenarioConfig struct {
	ID              string `yaml:"id"`
	DisplayName     string `yaml:"displayName"`
	RecommendedTier string `yaml:"recommendedTier"`
}

// PaymentConfig selects and configures the payment collaborator.
type PaymentConfig struct {
	Provider              string          `yaml:"provider"`
	Currency              string          `yaml:"currency"`
	StripeSecretKey       string          `yaml:"stripeSecretKey"`
	StripePaymentMethod   string          `yaml:"stripePaymentMethod"`
	SimulatedDelay        time.Duration   `yaml:"simulatedDelay"`
	SimulatedDeclineAbove decimal.Decimal `yaml:"simulatedDeclineAbove"`
}

// StorageConfig selects where exported snapshots are written.
type StorageConfig struct {
	Provider  string `yaml:"provider"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// ValkeyConfig contains connection information for the recent destinations store.
type ValkeyConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Addr      string        `yaml:"addr"`
	Prefix    string        `yaml:"prefix"`
	RecentTTL time.Duration `yaml:"recentTtl"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
	MinConns int32  `yaml:"minConns"`
}

// OfficersConfig seeds the mock availability generator.
type OfficersConfig struct {
	Seed uint64 `yaml:"seed"`
}

const (
	PaymentSimulated = "simulated"
	PaymentStripe    = "stripe"

	StorageMemory = "memory"
	StorageR2     = "r2"
)

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("AUTH_SECRET"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("AUTH_TOKEN_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = parsed
		}
	}
	if v := os.Getenv("BOOKING_TERMS"); v != "" {
		cfg.Booking.Terms = splitList(v)
	}
	if v := os.Getenv("BOOKING_SESSION_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Booking.SessionTTL = parsed
		}
	}
	if v := os.Getenv("PAYMENT_PROVIDER"); v != "" {
		cfg.Payment.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("PAYMENT_CURRENCY"); v != "" {
		cfg.Payment.Currency = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Payment.StripeSecretKey = v
	}
	if v := os.Getenv("STRIPE_PAYMENT_METHOD"); v != "" {
		cfg.Payment.StripePaymentMethod = v
	}
	if v := os.Getenv("STORAGE_PROVIDER"); v != "" {
		cfg.Storage.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("STORAGE_ENDPOINT"); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := os.Getenv("STORAGE_ACCESS_KEY"); v != "" {
		cfg.Storage.AccessKey = v
	}
	if v := os.Getenv("STORAGE_SECRET_KEY"); v != "" {
		cfg.Storage.SecretKey = v
	}
	if v := os.Getenv("STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Valkey.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Valkey.Addr = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("OFFICERS_SEED"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Officers.Seed = parsed
		}
	}
}

func defaultConfig() *Config {
	cfg := &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 35 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
			},
		},
		Auth: AuthConfig{
			Secret:          "change-me",
			TokenTTL:        time.Hour,
			RefreshTokenTTL: 30 * 24 * time.Hour,
		},
		Booking: BookingConfig{
			Terms:        []string{"service_terms", "cancellation_policy", "privacy_notice"},
			RecentLimit:  5,
			HistoryLimit: 50,
			SessionTTL:   2 * time.Hour,
		},
		Payment: PaymentConfig{
			Provider: PaymentSimulated,
			Currency: "GBP",
		},
		Storage: StorageConfig{
			Provider: StorageMemory,
			Region:   "auto",
		},
		Valkey: ValkeyConfig{
			Prefix:    "armora",
			RecentTTL: 90 * 24 * time.Hour,
		},
		Postgres: PostgresConfig{
			MaxConns: 4,
		},
		Officers: OfficersConfig{
			Seed: 1,
		},
	}
	for _, tier := range catalog.DefaultTiers() {
		cfg.Catalog.Tiers = append(cfg.Catalog.Tiers, TierConfig{
			ID:                   string(tier.ID),
			DisplayName:          tier.DisplayName,
			HourlyRate:           tier.HourlyRate,
			MinimumBillableHours: tier.MinimumBillableHours,
		})
	}
	for _, sc := range catalog.DefaultScenarios() {
		cfg.Catalog.Scenarios = append(cfg.Catalog.Scenarios, ScenarioConfig{
			ID:              sc.ID,
			DisplayName:     sc.DisplayName,
			RecommendedTier: string(sc.RecommendedTier),
		})
	}
	return cfg
}

// BuildCatalog converts the configured listings into a validated catalog.
func (c *Config) BuildCatalog() (*catalog.Catalog, error) {
	tiers := make([]catalog.ServiceTier, 0, len(c.Catalog.Tiers))
	for _, t := range c.Catalog.Tiers {
		hours := t.MinimumBillableHours
		if hours == 0 {
			hours = catalog.DefaultMinimumBillableHours
		}
		tiers = append(tiers, catalog.ServiceTier{
			ID:                   catalog.TierID(t.ID),
			DisplayName:          t.DisplayName,
			HourlyRate:           t.HourlyRate,
			MinimumBillableHours: hours,
		})
	}
	scenarios := make([]catalog.Scenario, 0, len(c.Catalog.Scenarios))
	for _, s := range c.Catalog.Scenarios {
		scenarios = append(scenarios, catalog.Scenario{
			ID:              s.ID,
			DisplayName:     s.DisplayName,
			RecommendedTier: catalog.TierID(s.RecommendedTier),
		})
	}
	return catalog.New(tiers, scenarios)
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return errors.New("auth.secret cannot be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTtl must be positive")
	}
	if c.Booking.RecentLimit <= 0 {
		return errors.New("booking.recentLimit must be positive")
	}
	if c.Booking.SessionTTL < 0 {
		return errors.New("booking.sessionTtl cannot be negative")
	}
	seen := make(map[string]struct{}, len(c.Booking.Terms))
	for _, term := range c.Booking.Terms {
		key := strings.TrimSpace(term)
		if key == "" {
			return errors.New("booking.terms cannot contain blank entries")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("booking.terms lists %q twice", key)
		}
		seen[key] = struct{}{}
	}
	cat, err := c.BuildCatalog()
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if err := cat.Covers(risk.RecommendableTiers()...); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	switch c.Payment.Provider {
	case PaymentSimulated:
	case PaymentStripe:
		if strings.TrimSpace(c.Payment.StripeSecretKey) == "" {
			return errors.New("payment.stripeSecretKey cannot be empty when provider is stripe")
		}
		if strings.TrimSpace(c.Payment.StripePaymentMethod) == "" {
			return errors.New("payment.stripePaymentMethod cannot be empty when provider is stripe")
		}
	default:
		return fmt.Errorf("payment.provider %q is not supported", c.Payment.Provider)
	}
	if len(strings.TrimSpace(c.Payment.Currency)) != 3 {
		return errors.New("payment.currency must be a three letter code")
	}
	switch c.Storage.Provider {
	case StorageMemory:
	case StorageR2:
		if c.Storage.Endpoint == "" || c.Storage.Bucket == "" {
			return errors.New("storage.endpoint and storage.bucket are required for r2")
		}
	default:
		return fmt.Errorf("storage.provider %q is not supported", c.Storage.Provider)
	}
	if c.Valkey.Enabled && strings.TrimSpace(c.Valkey.Addr) == "" {
		return errors.New("valkey.addr cannot be empty when valkey is enabled")
	}
	return nil
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
