package tdapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/overnightlabs/overnight-go/pkg/chain"
	"github.com/overnightlabs/overnight-go/pkg/transport"
)

// ErrRateLimited marks an upstream rate-limit rejection that survived the
// configured retries.
var ErrRateLimited = errors.New("rate limit exceeded")

// The upstream reports rate limiting inside a 200 body rather than a 429.
const rateLimitMarker = "transactions per seconds restriction reached"

type clientImpl struct {
	t       *transport.Client
	apiKey  string
	cfg     ClientConfig
	limiter *rate.Limiter
	cache   Cache
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewClient creates a chain-fetch client over the given transport.
func NewClient(t *transport.Client, apiKey string) Client {
	return NewClientWithConfig(t, apiKey, nil, DefaultClientConfig())
}

// NewClientWithConfig creates a chain-fetch client with explicit rate-limit,
// retry, and cache settings. cache may be nil.
func NewClientWithConfig(t *transport.Client, apiKey string, cache Cache, cfg ClientConfig) Client {
	cfg = cfg.normalize()
	return &clientImpl{
		t:       t,
		apiKey:  apiKey,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:   cache,
		sleep:   sleepCtx,
	}
}

func (c *clientImpl) OptionChain(ctx context.Context, req *ChainRequest) (chain.RawChain, error) {
	if req == nil || req.Symbol == "" {
		return chain.RawChain{}, fmt.Errorf("symbol is required")
	}

	key := "tdapi:chain:" + strings.ToUpper(req.Symbol)
	if c.cache != nil && c.cfg.CacheTTL > 0 {
		if body, ok := c.cache.Get(ctx, key); ok {
			return decodeChain(body)
		}
	}

	body, err := c.fetch(ctx, req)
	if err != nil {
		return chain.RawChain{}, err
	}

	if c.cache != nil && c.cfg.CacheTTL > 0 {
		// Cache failures are not fatal: the snapshot is already in hand.
		_ = c.cache.Set(ctx, key, body, c.cfg.CacheTTL)
	}
	return decodeChain(body)
}

// fetch issues the chain request, retrying after upstream rate-limit
// rejections with a fixed backoff.
func (c *clientImpl) fetch(ctx context.Context, req *ChainRequest) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.t.Get(ctx, "/marketdata/chains", req.query(c.apiKey))
		if err != nil {
			return nil, fmt.Errorf("fetch chain for %s: %w", req.Symbol, err)
		}

		upstreamErr := extractError(body)
		if upstreamErr == "" {
			return body, nil
		}
		if !strings.Contains(upstreamErr, rateLimitMarker) {
			return nil, fmt.Errorf("fetch chain for %s: upstream error: %s", req.Symbol, upstreamErr)
		}
		if attempt >= c.cfg.RetryMax {
			return nil, fmt.Errorf("fetch chain for %s: %w", req.Symbol, ErrRateLimited)
		}
		if err := c.sleep(ctx, c.cfg.RetryDelay); err != nil {
			return nil, err
		}
	}
}

func extractError(body []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Error
}

func decodeChain(body []byte) (chain.RawChain, error) {
	var raw chain.RawChain
	if err := json.Unmarshal(body, &raw); err != nil {
		return chain.RawChain{}, fmt.Errorf("decode chain: %w", err)
	}
	return raw, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
