package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	// APIBaseURL is the process-wide prefix every endpoint is appended to.
	// It is read once here and never mutated afterwards.
	APIBaseURL            string        `mapstructure:"api_base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	RequestLatestOnly     bool          `mapstructure:"request_latest_only"`

	CatalogFile string `mapstructure:"catalog_file"`
	SinksFile   string `mapstructure:"sinks_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "climapyg-dashboard")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("api_base_url", "http://localhost:8000/api/v1")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("request_latest_only", false)
	v.SetDefault("catalog_file", "./configs/catalog.yaml")
	v.SetDefault("sinks_file", "./configs/sinks.yaml")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.SetAPIBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}

	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	cfg.CatalogFile = strings.TrimSpace(cfg.CatalogFile)
	cfg.SinksFile = strings.TrimSpace(cfg.SinksFile)
	cfg.LogFile = strings.TrimSpace(cfg.LogFile)

	return &cfg, nil
}

// SetAPIBaseURL normalizes raw, validates it and stores it on the config.
// The config is left untouched when raw is invalid.
func (c *Config) SetAPIBaseURL(raw string) error {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if err := ValidateBaseURL(raw); err != nil {
		return err
	}
	c.APIBaseURL = raw
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL with a host.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("api_base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_base_url %q (expected http or https scheme)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid api_base_url %q (missing host)", raw)
	}
	return nil
}
