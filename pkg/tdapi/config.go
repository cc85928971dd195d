package tdapi

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ClientConfig controls rate limiting, retry, and snapshot caching.
type ClientConfig struct {
	// RequestsPerSecond throttles outbound chain fetches.
	RequestsPerSecond float64
	Burst             int
	// RetryMax bounds retries after an upstream rate-limit rejection.
	RetryMax int
	// RetryDelay is the pause before retrying a rate-limited fetch.
	RetryDelay time.Duration
	// CacheTTL is how long a fetched snapshot stays cached; zero disables
	// caching.
	CacheTTL time.Duration
}

// DefaultClientConfig returns deterministic defaults without reading
// environment variables.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestsPerSecond: 2,
		Burst:             1,
		RetryMax:          3,
		RetryDelay:        5 * time.Second,
		CacheTTL:          0,
	}
}

// ClientConfigFromEnv reads overrides from TDAPI_* environment variables.
func ClientConfigFromEnv() ClientConfig {
	cfg := DefaultClientConfig()
	if raw := strings.TrimSpace(os.Getenv("TDAPI_RPS")); raw != "" {
		if rps, err := strconv.ParseFloat(raw, 64); err == nil && rps > 0 {
			cfg.RequestsPerSecond = rps
		}
	}
	if raw := strings.TrimSpace(os.Getenv("TDAPI_RETRY_MAX")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cfg.RetryMax = n
		}
	}
	if raw := strings.TrimSpace(os.Getenv("TDAPI_RETRY_DELAY_MS")); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			cfg.RetryDelay = time.Duration(ms) * time.Millisecond
		}
	}
	if raw := strings.TrimSpace(os.Getenv("TDAPI_CACHE_TTL_MS")); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
			cfg.CacheTTL = time.Duration(ms) * time.Millisecond
		}
	}
	return cfg.normalize()
}

func (c ClientConfig) normalize() ClientConfig {
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 2
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.RetryMax < 0 {
		c.RetryMax = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 5 * time.Second
	}
	if c.CacheTTL < 0 {
		c.CacheTTL = 0
	}
	return c
}

func itoa(n int) string { return strconv.Itoa(n) }
