package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	// viper treats empty env vars as unset, so defaults apply.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:8000/api/v1" {
		t.Fatalf("unexpected default base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout %v", cfg.RequestTimeout)
	}
	if cfg.RequestLatestOnly {
		t.Fatalf("expected last-resolved-wins by default")
	}
	if cfg.CatalogFile != "./configs/catalog.yaml" || cfg.SinksFile != "./configs/sinks.yaml" {
		t.Fatalf("unexpected default files %q %q", cfg.CatalogFile, cfg.SinksFile)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/v1/")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("REQUEST_LATEST_ONLY", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "https://api.example.com/api/v1" {
		t.Fatalf("unexpected base url %q", cfg.APIBaseURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected request timeout %v", cfg.RequestTimeout)
	}
	if !cfg.RequestLatestOnly {
		t.Fatalf("expected request_latest_only to be true")
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level %q", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidBaseURL(t *testing.T) {
	cases := []string{"localhost:8000", "ftp://example.com", "http://"}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("API_BASE_URL", raw)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for base url %q", raw)
			}
		})
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "-1")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative timeout")
	}
}

func TestSetAPIBaseURLOverride(t *testing.T) {
	cfg := &Config{APIBaseURL: "http://localhost:8000/api/v1"}

	for _, raw := range []string{"foo", "localhost:9000", ""} {
		if err := cfg.SetAPIBaseURL(raw); err == nil {
			t.Fatalf("expected error for override %q", raw)
		}
	}
	if cfg.APIBaseURL != "http://localhost:8000/api/v1" {
		t.Fatalf("rejected override changed the config: %q", cfg.APIBaseURL)
	}

	if err := cfg.SetAPIBaseURL(" https://py.example.com/api/v1/ "); err != nil {
		t.Fatalf("SetAPIBaseURL: %v", err)
	}
	if cfg.APIBaseURL != "https://py.example.com/api/v1" {
		t.Fatalf("unexpected normalized url %q", cfg.APIBaseURL)
	}
}
