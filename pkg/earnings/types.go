// Package earnings evaluates options chains for earnings-driven strangle
// candidates: it estimates the expected move around each eligible expiration,
// selects put/call strikes bracketing that move, and records suitability
// diagnostics on the way.
package earnings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Leg describes one side of a candidate strangle.
type Leg struct {
	Target     decimal.Decimal `json:"target"`
	Strike     decimal.Decimal `json:"strike"`
	Mark       decimal.Decimal `json:"mark"`
	Spread     decimal.Decimal `json:"spread"`
	SpreadFrac decimal.Decimal `json:"spread_frac"`
	Delta      decimal.Decimal `json:"delta"`
}

// TermEvaluation is the evaluation of one expiration. When the expected move
// cannot be estimated only the metadata fields and Diagnostics are populated.
type TermEvaluation struct {
	IsRegular bool      `json:"is_regular"`
	Days      int       `json:"days"`
	Date      time.Time `json:"date"`

	EMStraddle  decimal.Decimal `json:"em_straddle"`
	EMImplied   decimal.Decimal `json:"em_implied"`
	EMEffective decimal.Decimal `json:"em_effective"`
	ATMIV       decimal.Decimal `json:"atm_iv"`

	Put            Leg             `json:"put"`
	Call           Leg             `json:"call"`
	StrangleCredit decimal.Decimal `json:"strangle_cr"`

	// Diagnostics are human-readable, each prefixed "WARNING:" or "ERROR:".
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// EarningsEvaluation is the full evaluation of one underlying.
type EarningsEvaluation struct {
	Underlying    string          `json:"underlying"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	YearHigh      decimal.Decimal `json:"year_high"`
	YearLow       decimal.Decimal `json:"year_low"`
	PercentChange decimal.Decimal `json:"percent_change"`
	Volume        int64           `json:"volume"`
	QuoteTime     int64           `json:"quote_time"`

	Expirations []TermEvaluation `json:"expirations"`
	Diagnostics []string         `json:"diagnostics,omitempty"`

	EvaluationTime time.Time `json:"evaluation_time"`
}

// IsTradeable reports whether an evaluation carries no diagnostics of its own
// and at least one of its expirations carries none either.
func IsTradeable(e EarningsEvaluation) bool {
	if len(e.Diagnostics) > 0 {
		return false
	}
	for _, term := range e.Expirations {
		if len(term.Diagnostics) == 0 {
			return true
		}
	}
	return false
}
