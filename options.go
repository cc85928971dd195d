package overnight

import (
	"time"

	"github.com/overnightlabs/overnight-go/pkg/tdapi"
	"github.com/overnightlabs/overnight-go/pkg/transport"
)

// Option overrides part of the root client configuration.
type Option func(*Client)

// WithHTTPClient supplies a custom HTTP client for all transports.
func WithHTTPClient(doer transport.Doer) Option {
	return func(c *Client) { c.Config.HTTPClient = doer }
}

// WithUserAgent overrides the User-Agent header on outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.Config.UserAgent = ua }
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.Config.Timeout = d }
}

// WithAPIKey sets the brokerage API key used for chain fetches.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.Config.APIKey = key }
}

// WithTDBaseURL overrides the market-data endpoint.
func WithTDBaseURL(u string) Option {
	return func(c *Client) { c.Config.BaseURLs.TD = u }
}

// WithRedisURL enables redis-backed snapshot caching.
func WithRedisURL(u string) Option {
	return func(c *Client) { c.Config.RedisURL = u }
}

// WithTDAPIConfig overrides rate-limit, retry, and cache settings.
func WithTDAPIConfig(cfg tdapi.ClientConfig) Option {
	return func(c *Client) { c.Config.TDAPIConfig = cfg }
}

// WithChains injects a pre-built chain-fetch client.
func WithChains(client tdapi.Client) Option {
	return func(c *Client) { c.Chains = client }
}
