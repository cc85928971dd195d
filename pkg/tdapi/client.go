// Package tdapi provides the client for the brokerage options-chain API.
// It is a read-only market-data surface: the evaluator consumes one chain
// snapshot per underlying and never places orders through it.
package tdapi

import (
	"context"
	"net/url"
	"time"

	"github.com/overnightlabs/overnight-go/pkg/chain"
)

// BaseURL is the production market-data endpoint.
const BaseURL = "https://api.tdameritrade.com/v1"

// Client defines the chain-fetch interface the evaluator depends on.
type Client interface {
	// OptionChain fetches one raw chain snapshot for an underlying.
	OptionChain(ctx context.Context, req *ChainRequest) (chain.RawChain, error)
}

// ChainRequest selects the chain to fetch.
type ChainRequest struct {
	Symbol string
	// ContractType filters to CALL, PUT, or ALL (default ALL).
	ContractType string
	// StrikeCount limits strikes around the at-the-money price; zero means
	// the upstream default.
	StrikeCount int
	// FromDate/ToDate bound the expirations returned, when set.
	FromDate time.Time
	ToDate   time.Time
}

func (r *ChainRequest) query(apiKey string) url.Values {
	q := url.Values{}
	q.Set("apikey", apiKey)
	q.Set("symbol", r.Symbol)
	contractType := r.ContractType
	if contractType == "" {
		contractType = "ALL"
	}
	q.Set("contractType", contractType)
	q.Set("includeQuotes", "TRUE")
	if r.StrikeCount > 0 {
		q.Set("strikeCount", itoa(r.StrikeCount))
	}
	if !r.FromDate.IsZero() {
		q.Set("fromDate", r.FromDate.Format("2006-01-02"))
	}
	if !r.ToDate.IsZero() {
		q.Set("toDate", r.ToDate.Format("2006-01-02"))
	}
	return q
}
