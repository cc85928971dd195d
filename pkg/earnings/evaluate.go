package earnings

import (
	"fmt"
	"time"

	"github.com/overnightlabs/overnight-go/pkg/chain"
)

// now is swapped out in tests.
var now = time.Now

// Evaluate runs the full analysis for one underlying's chain snapshot.
// Schema failures abort the snapshot; everything else surfaces as
// diagnostics on the returned record.
func Evaluate(raw chain.RawChain, cfg Config) (EarningsEvaluation, error) {
	ch, err := chain.Normalize(raw)
	if err != nil {
		return EarningsEvaluation{}, fmt.Errorf("normalize chain for %s: %w", raw.Symbol, err)
	}

	u := ch.Info.Underlying
	e := EarningsEvaluation{
		Underlying:    ch.Info.Symbol,
		Name:          u.Description,
		Price:         u.Mark,
		YearHigh:      u.FiftyTwoWeekHigh,
		YearLow:       u.FiftyTwoWeekLow,
		PercentChange: u.PercentChange,
		Volume:        u.TotalVolume,
		QuoteTime:     u.QuoteTime,
	}

	for _, expi := range eligibleExpirations(ch, cfg.MaxDTE) {
		e.Expirations = append(e.Expirations, evaluateTerm(ch, expi, cfg))
	}

	if e.Volume < cfg.VolumeThreshold {
		e.Diagnostics = append(e.Diagnostics,
			fmt.Sprintf("WARNING: Low volume (less than %d)", cfg.VolumeThreshold))
	}

	e.EvaluationTime = now()
	return e, nil
}

// eligibleExpirations picks the front expiration unconditionally when it is
// irregular (event-driven weeklies around earnings), then every regular
// expiration in ascending date order until one exceeds maxDTE.
func eligibleExpirations(ch chain.Chain, maxDTE int) []chain.Expiration {
	var out []chain.Expiration

	sorted := ch.Sorted()
	if len(sorted) > 0 && !sorted[0].IsRegular() {
		out = append(out, sorted[0])
	}
	for _, expi := range ch.Regular() {
		if expi.Info.DaysToExpiration > maxDTE {
			break
		}
		out = append(out, expi)
	}
	return out
}
