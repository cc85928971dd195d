package earnings

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/chain"
)

// ErrNoEstimate marks an expiration whose expected move cannot be computed,
// either because a side has no strikes or because the at-the-money implied
// volatility is unavailable on either side.
var ErrNoEstimate = errors.New("expected move unavailable")

// Strangle weights for the three concentric straddle estimates.
var (
	weightInner  = decimal.RequireFromString("0.60")
	weightMiddle = decimal.RequireFromString("0.30")
	weightOuter  = decimal.RequireFromString("0.10")

	emImpliedScale = decimal.RequireFromString("0.85")
	two            = decimal.NewFromInt(2)
	oneHundred     = decimal.NewFromInt(100)
)

type moveEstimate struct {
	// Straddle is the weighted sum of three concentric strangle credits.
	Straddle decimal.Decimal
	// Implied is atmIV * sqrt(dte/365) * price.
	Implied decimal.Decimal
	// ATMIV is the at-the-money implied volatility as a fraction.
	ATMIV decimal.Decimal
}

// estimateExpectedMove computes two independent expected-move estimates for
// one expiration around the underlying mark.
func estimateExpectedMove(info chain.Info, expi chain.Expiration) (moveEstimate, error) {
	price := info.Underlying.Mark

	puts, _, err := chain.Neighbors(expi.Puts, price, 2)
	if err != nil {
		return moveEstimate{}, ErrNoEstimate
	}
	calls, _, err := chain.Neighbors(expi.Calls, price, 2)
	if err != nil {
		return moveEstimate{}, ErrNoEstimate
	}

	put0, call0 := puts[0], calls[0]
	if !put0.Volatility.Valid || !call0.Volatility.Valid {
		return moveEstimate{}, ErrNoEstimate
	}

	// Source volatilities are percentages.
	atmIV := put0.Volatility.Decimal.Add(call0.Volatility.Decimal).Div(two).Div(oneHundred)

	// The square root has no exact decimal form; compute in floats and
	// quantize the result to cents. Feeds occasionally report a negative DTE
	// on stale expirations, which would push NaN into the quantize step.
	if expi.Info.DaysToExpiration < 0 {
		return moveEstimate{}, ErrNoEstimate
	}
	ivf, _ := atmIV.Float64()
	pricef, _ := price.Float64()
	days := float64(expi.Info.DaysToExpiration)
	impliedf := ivf * math.Sqrt(days/365) * pricef
	if math.IsNaN(impliedf) || math.IsInf(impliedf, 0) {
		return moveEstimate{}, ErrNoEstimate
	}
	implied := decimal.NewFromFloat(impliedf).RoundBank(2)

	straddle := weightInner.Mul(put0.Mark.Add(call0.Mark)).
		Add(weightMiddle.Mul(chain.MarkOrZero(puts[1]).Add(chain.MarkOrZero(calls[1])))).
		Add(weightOuter.Mul(chain.MarkOrZero(puts[2]).Add(chain.MarkOrZero(calls[2])))).
		RoundBank(2)

	return moveEstimate{Straddle: straddle, Implied: implied, ATMIV: atmIV}, nil
}
