package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_TYPE", "DB_PATH", "DATABASE_URL", "LOG_LEVEL", "LOG_FILE", "REQUEST_TIMEOUT", "METRICS_ENABLED", "RATE_LIMIT", "RATE_LIMIT_WINDOW", "TRUST_PROXY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("DatabaseType = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
	if cfg.RateLimit != 0 || cfg.RateLimitWindow != time.Minute || cfg.TrustProxy {
		t.Errorf("rate limiting should default to off with a 1m window, got %d per %v (trust proxy %v)", cfg.RateLimit, cfg.RateLimitWindow, cfg.TrustProxy)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q, want :8080", cfg.Addr())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/childcare")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("RATE_LIMIT", "120")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("DatabaseType = %q, want postgres", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "postgres://localhost/childcare" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.MetricsEnabled {
		t.Error("MetricsEnabled should be false")
	}
	if cfg.RateLimit != 120 || cfg.RateLimitWindow != 30*time.Second || !cfg.TrustProxy {
		t.Errorf("rate limit = %d per %v (trust proxy %v), want 120 per 30s behind a proxy", cfg.RateLimit, cfg.RateLimitWindow, cfg.TrustProxy)
	}
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		check func(*Config) bool
	}{
		{
			name:  "unparseable duration",
			key:   "REQUEST_TIMEOUT",
			value: "soon",
			check: func(c *Config) bool { return c.RequestTimeout == 30*time.Second },
		},
		{
			name:  "negative duration",
			key:   "REQUEST_TIMEOUT",
			value: "-1s",
			check: func(c *Config) bool { return c.RequestTimeout == 30*time.Second },
		},
		{
			name:  "negative rate limit",
			key:   "RATE_LIMIT",
			value: "-5",
			check: func(c *Config) bool { return c.RateLimit == 0 },
		},
		{
			name:  "unparseable bool",
			key:   "METRICS_ENABLED",
			value: "maybe",
			check: func(c *Config) bool { return c.MetricsEnabled },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if !tt.check(Load()) {
				t.Errorf("%s=%q did not fall back to the default", tt.key, tt.value)
			}
		})
	}
}
