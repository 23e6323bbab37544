package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is used when no base URL is configured.
const DefaultAPIBaseURL = "http://127.0.0.1:8000"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	APIBaseURL            string        `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	HealthTimeoutSeconds  int64         `mapstructure:"health_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	HealthTimeout         time.Duration `mapstructure:"-"`

	// timeoutOverride replaces the whole-second request timeout when set.
	timeoutOverride time.Duration

	HistoryCapacity    int     `mapstructure:"history_capacity"`
	BatchRatePerSecond float64 `mapstructure:"batch_rate_per_second"`

	PublishersFile         string        `mapstructure:"publishers_file"`
	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	DedupeTTLSeconds       int64         `mapstructure:"dedupe_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	DedupeTTL              time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "namematch-console")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("health_timeout_seconds", 5)
	v.SetDefault("history_capacity", 10)
	v.SetDefault("batch_rate_per_second", 2.0)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/namematch.db")
	v.SetDefault("dedupe_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates the raw values and derives durations. It is re-run after
// CLI flag overrides are applied.
func (c *Config) finalize() error {
	if _, err := NormalizeBaseURL(c.APIBaseURL); err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	c.APIBaseURL, _ = NormalizeBaseURL(c.APIBaseURL)

	if c.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	if c.HealthTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid health_timeout_seconds (must be positive seconds)")
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	if c.timeoutOverride > 0 {
		c.RequestTimeout = c.timeoutOverride
	}
	c.HealthTimeout = time.Duration(c.HealthTimeoutSeconds) * time.Second

	if c.HistoryCapacity <= 0 {
		return fmt.Errorf("invalid history_capacity (must be positive)")
	}
	if c.BatchRatePerSecond <= 0 {
		return fmt.Errorf("invalid batch_rate_per_second (must be positive)")
	}

	if c.DedupeTTLSeconds <= 0 {
		return fmt.Errorf("invalid dedupe_ttl_seconds (must be positive seconds)")
	}
	if c.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	c.DedupeTTL = time.Duration(c.DedupeTTLSeconds) * time.Second
	c.StorageCleanupInterval = time.Duration(c.StorageCleanupSeconds) * time.Second
	return nil
}

// Overrides carries command-line values that take precedence over the loaded config.
type Overrides struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	LogLevel       string
	BatchRate      float64
}

// Apply merges non-zero overrides into the config and re-validates it.
func (c *Config) Apply(o Overrides) error {
	if s := strings.TrimSpace(o.APIBaseURL); s != "" {
		c.APIBaseURL = s
	}
	if o.RequestTimeout > 0 {
		c.timeoutOverride = o.RequestTimeout
	}
	if s := strings.TrimSpace(o.LogLevel); s != "" {
		c.LogLevel = s
	}
	if o.BatchRate > 0 {
		c.BatchRatePerSecond = o.BatchRate
	}
	return c.finalize()
}

// NormalizeBaseURL trims whitespace and trailing slashes and checks that the
// value is an absolute http(s) URL.
func NormalizeBaseURL(raw string) (string, error) {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return "", fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base url %q must use http or https", s)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base url %q has no host", s)
	}
	return s, nil
}
