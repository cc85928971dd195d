package chain

import (
	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type optDef struct {
	strike string
	mark   string
	bid    string
	ask    string
	iv     string // "" means NaN
	delta  string // "" means NaN
}

func makeOption(def optDef, dte int, expType string) Option {
	o := Option{
		StrikePrice:      dec(def.strike),
		Mark:             dec(def.mark),
		BidSize:          10,
		AskSize:          10,
		DaysToExpiration: dte,
		ExpirationType:   expType,
	}
	if def.bid != "" {
		o.Bid = dec(def.bid)
	}
	if def.ask != "" {
		o.Ask = dec(def.ask)
	}
	if def.iv != "" {
		o.Volatility = types.FromString(def.iv)
	}
	if def.delta != "" {
		o.Delta = types.FromString(def.delta)
	}
	return o
}

func sideMap(dte int, expType string, defs ...optDef) map[string][]Option {
	side := make(map[string][]Option, len(defs))
	for _, def := range defs {
		side[def.strike] = []Option{makeOption(def, dte, expType)}
	}
	return side
}

// rawFixture builds a one-expiration snapshot around an underlying mark of 100.
func rawFixture(tag string, dte int, expType string) RawChain {
	return RawChain{
		Symbol: "XYZ",
		Status: "SUCCESS",
		Underlying: Underlying{
			Symbol:           "XYZ",
			Description:      "Xyz Corp. Common Stock",
			Mark:             dec("100.00"),
			FiftyTwoWeekHigh: dec("140"),
			FiftyTwoWeekLow:  dec("80"),
			PercentChange:    dec("-1.2"),
			TotalVolume:      500000,
			QuoteTime:        1615000000000,
		},
		CallExpDateMap: ExpDateMap{
			tag: sideMap(dte, expType,
				optDef{strike: "105", mark: "1.60", bid: "1.50", ask: "1.70", iv: "40", delta: "0.30"},
				optDef{strike: "110", mark: "1.10", bid: "1.00", ask: "1.20", iv: "41", delta: "0.20"},
				optDef{strike: "115", mark: "0.70", bid: "0.60", ask: "0.80", iv: "42", delta: "0.10"},
			),
		},
		PutExpDateMap: ExpDateMap{
			tag: sideMap(dte, expType,
				optDef{strike: "95", mark: "1.50", bid: "1.40", ask: "1.60", iv: "40", delta: "-0.30"},
				optDef{strike: "90", mark: "1.00", bid: "0.90", ask: "1.10", iv: "39", delta: "-0.20"},
				optDef{strike: "85", mark: "0.60", bid: "0.50", ask: "0.70", iv: "38", delta: "-0.10"},
			),
		},
	}
}
