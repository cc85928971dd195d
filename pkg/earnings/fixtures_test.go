package earnings

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/overnightlabs/overnight-go/pkg/chain"
	"github.com/overnightlabs/overnight-go/pkg/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type leg struct {
	strike string
	mark   string
	bid    string
	ask    string
	iv     string // "" means NaN
	delta  string // "" means NaN
	size   int
}

func opt(l leg, dte int, expType string) chain.Option {
	size := l.size
	if size == 0 {
		size = 10
	}
	o := chain.Option{
		StrikePrice:      dec(l.strike),
		Mark:             dec(l.mark),
		BidSize:          size,
		AskSize:          size,
		DaysToExpiration: dte,
		ExpirationType:   expType,
	}
	if l.bid != "" {
		o.Bid = dec(l.bid)
	}
	if l.ask != "" {
		o.Ask = dec(l.ask)
	}
	if l.iv != "" {
		o.Volatility = types.FromString(l.iv)
	}
	if l.delta != "" {
		o.Delta = types.FromString(l.delta)
	}
	return o
}

func expiration(date time.Time, dte int, expType string, puts, calls []leg) chain.Expiration {
	e := chain.Expiration{
		Info: chain.ExpirationInfo{
			DaysToExpiration: dte,
			ExpirationType:   expType,
			Date:             date,
		},
	}
	for _, l := range puts {
		e.Puts = append(e.Puts, opt(l, dte, expType))
	}
	for _, l := range calls {
		e.Calls = append(e.Calls, opt(l, dte, expType))
	}
	return e
}

// samplePuts/sampleCalls reproduce the worked numeric scenario: underlying at
// 100.00, 30 days out, nearest marks 1.50/1.60, then 1.00/1.10, then
// 0.60/0.70, ATM IV 40% on both sides.
func samplePuts() []leg {
	return []leg{
		{strike: "95", mark: "1.50", bid: "1.40", ask: "1.60", iv: "40", delta: "-0.28"},
		{strike: "90", mark: "1.00", bid: "0.90", ask: "1.10", iv: "39", delta: "-0.18"},
		{strike: "85", mark: "0.60", bid: "0.50", ask: "0.70", iv: "38", delta: "-0.09"},
	}
}

func sampleCalls() []leg {
	return []leg{
		{strike: "105", mark: "1.60", bid: "1.50", ask: "1.70", iv: "40", delta: "0.28"},
		{strike: "110", mark: "1.10", bid: "1.00", ask: "1.20", iv: "41", delta: "0.18"},
		{strike: "115", mark: "0.70", bid: "0.60", ask: "0.80", iv: "42", delta: "0.09"},
	}
}

func sampleExpiration() chain.Expiration {
	date := time.Date(2021, 3, 19, 0, 0, 0, 0, time.UTC)
	return expiration(date, 30, "R", samplePuts(), sampleCalls())
}

func sampleChain(expis ...chain.Expiration) chain.Chain {
	c := chain.Chain{
		Info: chain.Info{
			Symbol: "XYZ",
			Underlying: chain.Underlying{
				Symbol:           "XYZ",
				Description:      "Xyz Corp. Common Stock",
				Mark:             dec("100.00"),
				FiftyTwoWeekHigh: dec("140"),
				FiftyTwoWeekLow:  dec("80"),
				PercentChange:    dec("-1.2"),
				TotalVolume:      5000000,
				QuoteTime:        1615000000000,
			},
		},
		Expirations: make(map[time.Time]chain.Expiration, len(expis)),
	}
	for _, e := range expis {
		c.Expirations[e.Info.Date] = e
	}
	return c
}

// rawFromExpirations rebuilds a RawChain from expirations so Evaluate can be
// exercised end to end.
func rawFromExpirations(info chain.Info, expis ...chain.Expiration) chain.RawChain {
	raw := chain.RawChain{
		Symbol:         info.Symbol,
		Status:         "SUCCESS",
		Underlying:     info.Underlying,
		CallExpDateMap: chain.ExpDateMap{},
		PutExpDateMap:  chain.ExpDateMap{},
	}
	for _, e := range expis {
		tag := fmt.Sprintf("%s:%d", e.Info.Date.Format("2006-01-02"), e.Info.DaysToExpiration)
		calls := make(map[string][]chain.Option, len(e.Calls))
		for _, o := range e.Calls {
			calls[o.StrikePrice.String()] = []chain.Option{o}
		}
		puts := make(map[string][]chain.Option, len(e.Puts))
		for _, o := range e.Puts {
			puts[o.StrikePrice.String()] = []chain.Option{o}
		}
		raw.CallExpDateMap[tag] = calls
		raw.PutExpDateMap[tag] = puts
	}
	return raw
}
