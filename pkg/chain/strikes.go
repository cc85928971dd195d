package chain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrEmptySequence marks a strike selection over an empty side of the chain.
var ErrEmptySequence = errors.New("no strikes available")

// ClosestStrike returns the strike price nearest target and its index within
// strikes. Exact distance ties break toward the lower strike price, then the
// lower index. The returned price is quantized to cents.
func ClosestStrike(strikes []Option, target decimal.Decimal) (decimal.Decimal, int, error) {
	if len(strikes) == 0 {
		return decimal.Zero, 0, ErrEmptySequence
	}

	best := 0
	bestDist := strikes[0].StrikePrice.Sub(target).Abs()
	for i := 1; i < len(strikes); i++ {
		dist := strikes[i].StrikePrice.Sub(target).Abs()
		switch dist.Cmp(bestDist) {
		case -1:
			best, bestDist = i, dist
		case 0:
			if strikes[i].StrikePrice.LessThan(strikes[best].StrikePrice) {
				best, bestDist = i, dist
			}
		}
	}
	return strikes[best].StrikePrice.RoundBank(2), best, nil
}

// optionAt indexes into strikes, returning nil when out of range.
func optionAt(strikes []Option, index int) *Option {
	if index < 0 || index >= len(strikes) {
		return nil
	}
	return &strikes[index]
}

// MarkOrZero returns the mark of o, or zero when o is absent.
func MarkOrZero(o *Option) decimal.Decimal {
	if o == nil {
		return decimal.Zero
	}
	return o.Mark
}

// Neighbors returns the strike nearest target plus the next n strikes outward
// in sequence order. Absent entries are nil. The second return value is the
// index of the nearest strike.
func Neighbors(strikes []Option, target decimal.Decimal, n int) ([]*Option, int, error) {
	_, index, err := ClosestStrike(strikes, target)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*Option, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, optionAt(strikes, index+i))
	}
	return out, index, nil
}
