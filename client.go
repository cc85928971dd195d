package overnight

import (
	"net/http"
	"time"

	"github.com/overnightlabs/overnight-go/pkg/tdapi"
	"github.com/overnightlabs/overnight-go/pkg/transport"
)

// defaultCacheTTL applies when a Redis URL is configured without an explicit
// snapshot TTL.
const defaultCacheTTL = 5 * time.Minute

// Client aggregates service clients behind a shared configuration.
type Client struct {
	Config Config

	// Chains fetches raw options-chain snapshots.
	Chains tdapi.Client
}

// NewClient creates a new root client with optional overrides.
func NewClient(opts ...Option) *Client {
	c := &Client{Config: DefaultConfig()}

	for _, opt := range opts {
		opt(c)
	}

	if c.Config.HTTPClient == nil && c.Config.Timeout > 0 {
		c.Config.HTTPClient = &http.Client{Timeout: c.Config.Timeout}
	}

	if c.Config.RedisURL != "" && c.Config.TDAPIConfig.CacheTTL == 0 {
		c.Config.TDAPIConfig.CacheTTL = defaultCacheTTL
	}

	if c.Chains == nil {
		tdTransport := transport.NewClient(c.Config.HTTPClient, c.Config.BaseURLs.TD)
		tdTransport.SetUserAgent(c.Config.UserAgent)

		var cache tdapi.Cache
		if c.Config.TDAPIConfig.CacheTTL > 0 {
			cache = tdapi.NewCache(c.Config.RedisURL)
		}
		c.Chains = tdapi.NewClientWithConfig(tdTransport, c.Config.APIKey, cache, c.Config.TDAPIConfig)
	}

	return c
}
