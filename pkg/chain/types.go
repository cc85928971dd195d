// Package chain models raw options-chain snapshots and their normalized form.
//
// A raw snapshot arrives as one nested JSON document per underlying, with
// calls and puts held in two parallel maps keyed by an expiration tag of the
// form "<ISO-date>:<days-to-expiration>". Normalize joins the two maps into a
// single structure keyed by expiration date, with strikes sorted for
// collar-style traversal: puts descending, calls ascending, so the strike
// nearest the underlying price sits near the front of each side.
package chain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/types"
)

// Underlying carries the stock-level quote embedded in a chain snapshot.
type Underlying struct {
	Symbol           string          `json:"symbol"`
	Description      string          `json:"description"`
	Mark             decimal.Decimal `json:"mark"`
	FiftyTwoWeekHigh decimal.Decimal `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  decimal.Decimal `json:"fiftyTwoWeekLow"`
	PercentChange    decimal.Decimal `json:"percentChange"`
	TotalVolume      int64           `json:"totalVolume"`
	QuoteTime        int64           `json:"quoteTime"`
}

// Option is one per-strike record. Delta and Volatility may be reported as
// "NaN" by the feed and decode as invalid.
type Option struct {
	StrikePrice      decimal.Decimal `json:"strikePrice"`
	Bid              decimal.Decimal `json:"bid"`
	Ask              decimal.Decimal `json:"ask"`
	Mark             decimal.Decimal `json:"mark"`
	BidSize          int             `json:"bidSize"`
	AskSize          int             `json:"askSize"`
	Delta            types.Nullable  `json:"delta"`
	Volatility       types.Nullable  `json:"volatility"`
	DaysToExpiration int             `json:"daysToExpiration"`
	ExpirationDate   int64           `json:"expirationDate"`
	ExpirationType   string          `json:"expirationType"`
}

// ExpDateMap maps an expiration tag to a strike-price-keyed map of
// single-element option lists, mirroring the upstream wire layout.
type ExpDateMap map[string]map[string][]Option

// RawChain is the decoded per-request chain snapshot.
type RawChain struct {
	Symbol            string          `json:"symbol"`
	Status            string          `json:"status"`
	IsDelayed         bool            `json:"isDelayed"`
	NumberOfContracts int             `json:"numberOfContracts"`
	InterestRate      decimal.Decimal `json:"interestRate"`
	Underlying        Underlying      `json:"underlying"`
	CallExpDateMap    ExpDateMap      `json:"callExpDateMap"`
	PutExpDateMap     ExpDateMap      `json:"putExpDateMap"`
}

// Info is the chain snapshot stripped of the two expiration maps.
type Info struct {
	Symbol            string
	Status            string
	IsDelayed         bool
	NumberOfContracts int
	InterestRate      decimal.Decimal
	Underlying        Underlying
}

// ExpirationInfo holds the metadata shared by every strike at one expiration.
type ExpirationInfo struct {
	DaysToExpiration int
	ExpirationDate   int64
	ExpirationType   string
	Date             time.Time
}

// Expiration holds the two sides of the chain at one expiration.
// Puts are sorted by strike descending, calls ascending.
type Expiration struct {
	Info  ExpirationInfo
	Puts  []Option
	Calls []Option
}

// IsRegular reports whether this is a standard-cycle expiration.
// Anything other than type "R" (weeklies, quarterlies, non-standard) is not.
func (e Expiration) IsRegular() bool {
	return e.Info.ExpirationType == "R"
}

// Chain is the normalized snapshot, keyed by expiration date.
type Chain struct {
	Info        Info
	Expirations map[time.Time]Expiration
}

// Sorted returns the expirations in ascending date order.
func (c Chain) Sorted() []Expiration {
	out := make([]Expiration, 0, len(c.Expirations))
	for _, expi := range c.Expirations {
		out = append(out, expi)
	}
	sortExpirations(out)
	return out
}

// Regular returns the regular expirations in ascending date order.
func (c Chain) Regular() []Expiration {
	var out []Expiration
	for _, expi := range c.Sorted() {
		if expi.IsRegular() {
			out = append(out, expi)
		}
	}
	return out
}
