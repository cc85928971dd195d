package earnings

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/chain"
	"github.com/overnightlabs/overnight-go/pkg/types"
)

// evaluateTerm evaluates one expiration. It never fails: every irregularity
// is recorded as a diagnostic on the returned record, and the single early
// exit (no expected-move estimate) leaves only the metadata populated.
func evaluateTerm(ch chain.Chain, expi chain.Expiration, cfg Config) TermEvaluation {
	x := TermEvaluation{
		IsRegular: expi.IsRegular(),
		Days:      expi.Info.DaysToExpiration,
		Date:      expi.Info.Date,
	}

	em, err := estimateExpectedMove(ch.Info, expi)
	if err != nil {
		x.Diagnostics = append(x.Diagnostics, "ERROR: Could not calculate EM")
		return x
	}
	x.EMStraddle = em.Straddle
	x.EMImplied = em.Implied
	x.EMEffective = em.Straddle.Add(em.Implied.Mul(emImpliedScale)).Div(two)
	x.ATMIV = em.ATMIV

	// Strike targets bracket the expected move around the underlying price.
	price := ch.Info.Underlying.Mark
	width := cfg.StrangleEMWidth.Mul(x.EMEffective)
	x.Put.Target = price.Sub(width).RoundBank(2)
	x.Call.Target = price.Add(width).RoundBank(2)

	putStrike := selectLeg(&x.Put, expi.Puts, x.Put.Target)
	callStrike := selectLeg(&x.Call, expi.Calls, x.Call.Target)
	if putStrike == nil || callStrike == nil {
		// Unreachable after a successful estimate; kept as a diagnostic so
		// the evaluator never raises.
		x.Diagnostics = append(x.Diagnostics, "ERROR: Could not select strikes")
		return x
	}
	if putStrike.BidSize < cfg.MinSize || putStrike.AskSize < cfg.MinSize {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: No size on puts (%d x %d)", putStrike.BidSize, putStrike.AskSize))
	}
	if callStrike.BidSize < cfg.MinSize || callStrike.AskSize < cfg.MinSize {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: No size on calls (%d x %d)", callStrike.BidSize, callStrike.AskSize))
	}

	x.Put.Mark = putStrike.Mark
	x.Call.Mark = callStrike.Mark
	x.StrangleCredit = x.Put.Mark.Add(x.Call.Mark)

	x.Put.Spread = putStrike.Ask.Sub(putStrike.Bid)
	x.Call.Spread = callStrike.Ask.Sub(callStrike.Bid)
	x.Put.SpreadFrac = spreadFrac(x.Put.Spread, x.Put.Mark)
	x.Call.SpreadFrac = spreadFrac(x.Call.Spread, x.Call.Mark)

	if !putStrike.Delta.Valid || !callStrike.Delta.Valid {
		x.Diagnostics = append(x.Diagnostics, "ERROR: Delta is NaN")
	}
	x.Put.Delta = safeQuantize(putStrike.Delta)
	x.Call.Delta = safeQuantize(callStrike.Delta)
	if x.Put.Delta.Abs().GreaterThan(cfg.MaxDelta) || x.Call.Delta.Abs().GreaterThan(cfg.MaxDelta) {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: Delta is too large (>%s)", cfg.MaxDelta))
	}

	if x.StrangleCredit.LessThan(cfg.MinStrangleCredits) {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: Not enough credits received (<%s)", cfg.MinStrangleCredits))
	}

	maxSpreadPct := cfg.MaxSpreadFrac.Mul(oneHundred).StringFixed(0)
	if x.Put.SpreadFrac.GreaterThan(cfg.MaxSpreadFrac) {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: Put spreads are wide (>%s%%)", maxSpreadPct))
	}
	if x.Call.SpreadFrac.GreaterThan(cfg.MaxSpreadFrac) {
		x.Diagnostics = append(x.Diagnostics,
			fmt.Sprintf("WARNING: Call spreads are wide (>%s%%)", maxSpreadPct))
	}

	return x
}

// selectLeg records target/strike selection on leg and returns the selected
// option, or nil when the side is empty.
func selectLeg(leg *Leg, strikes []chain.Option, target decimal.Decimal) *chain.Option {
	strike, index, err := chain.ClosestStrike(strikes, target)
	if err != nil {
		return nil
	}
	leg.Strike = strike
	return &strikes[index]
}

// spreadFrac guards against a zero mark: a worthless option reports a zero
// spread fraction rather than dividing by zero.
func spreadFrac(spread, mark decimal.Decimal) decimal.Decimal {
	if mark.IsZero() {
		return decimal.Zero
	}
	return spread.Div(mark)
}

// safeQuantize quantizes to cents, mapping a missing value to zero.
func safeQuantize(n types.Nullable) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero.RoundBank(2)
	}
	return n.Decimal.RoundBank(2)
}
