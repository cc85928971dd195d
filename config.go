// Package overnight aggregates the chain-fetch client and evaluation
// configuration behind one root client, mirroring how a scan binary wires
// the pieces together.
package overnight

import (
	"time"

	"github.com/overnightlabs/overnight-go/pkg/tdapi"
	"github.com/overnightlabs/overnight-go/pkg/transport"
)

// BaseURLs defines per-service base endpoints.
type BaseURLs struct {
	TD string
}

// Config holds shared SDK configuration.
type Config struct {
	BaseURLs   BaseURLs
	HTTPClient transport.Doer
	UserAgent  string
	Timeout    time.Duration
	// APIKey authenticates chain fetches against the brokerage API.
	APIKey string
	// RedisURL enables snapshot caching when set, using a default TTL unless
	// TDAPIConfig.CacheTTL is set explicitly; an unreachable server falls
	// back to an in-process cache.
	RedisURL    string
	TDAPIConfig tdapi.ClientConfig
}

// DefaultConfig returns default service endpoints.
func DefaultConfig() Config {
	return Config{
		BaseURLs: BaseURLs{
			TD: tdapi.BaseURL,
		},
		UserAgent: "github.com/overnightlabs/overnight-go",
		Timeout:   30 * time.Second,
		// Keep env-driven rate-limit behavior at the root client level.
		TDAPIConfig: tdapi.ClientConfigFromEnv(),
	}
}
