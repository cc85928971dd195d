package chain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrSchema marks a snapshot whose call and put expiration tag sets differ.
// Such a snapshot cannot be joined by expiration and is rejected whole.
var ErrSchema = errors.New("call/put expiration maps do not match")

// Normalize joins the call and put maps of a raw snapshot by expiration.
func Normalize(raw RawChain) (Chain, error) {
	if err := checkTagSets(raw.CallExpDateMap, raw.PutExpDateMap); err != nil {
		return Chain{}, err
	}

	expis := make(map[time.Time]Expiration, len(raw.CallExpDateMap))
	for tag, callStrikes := range raw.CallExpDateMap {
		date, err := parseTag(tag)
		if err != nil {
			return Chain{}, err
		}

		calls := flatten(callStrikes)
		puts := flatten(raw.PutExpDateMap[tag])
		sort.Slice(calls, func(i, j int) bool {
			return calls[i].StrikePrice.LessThan(calls[j].StrikePrice)
		})
		sort.Slice(puts, func(i, j int) bool {
			return puts[i].StrikePrice.GreaterThan(puts[j].StrikePrice)
		})
		if len(calls) == 0 {
			return Chain{}, fmt.Errorf("%w: no call strikes for %s", ErrSchema, tag)
		}

		// Every strike at one expiration shares this metadata.
		any := calls[0]
		expis[date] = Expiration{
			Info: ExpirationInfo{
				DaysToExpiration: any.DaysToExpiration,
				ExpirationDate:   any.ExpirationDate,
				ExpirationType:   any.ExpirationType,
				Date:             date,
			},
			Puts:  puts,
			Calls: calls,
		}
	}

	return Chain{
		Info: Info{
			Symbol:            raw.Symbol,
			Status:            raw.Status,
			IsDelayed:         raw.IsDelayed,
			NumberOfContracts: raw.NumberOfContracts,
			InterestRate:      raw.InterestRate,
			Underlying:        raw.Underlying,
		},
		Expirations: expis,
	}, nil
}

func checkTagSets(calls, puts ExpDateMap) error {
	if len(calls) != len(puts) {
		return fmt.Errorf("%w: %d call expirations vs %d put expirations",
			ErrSchema, len(calls), len(puts))
	}
	for tag := range calls {
		if _, ok := puts[tag]; !ok {
			return fmt.Errorf("%w: call expiration %q missing from puts", ErrSchema, tag)
		}
	}
	return nil
}

// parseTag extracts the date before the first ':' of a "<date>:<dte>" tag.
func parseTag(tag string) (time.Time, error) {
	datePart, _, _ := strings.Cut(tag, ":")
	date, err := time.ParseInLocation("2006-01-02", datePart, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse expiration tag %q: %w", tag, err)
	}
	return date, nil
}

func flatten(strikes map[string][]Option) []Option {
	out := make([]Option, 0, len(strikes))
	for _, list := range strikes {
		if len(list) > 0 {
			out = append(out, list[0])
		}
	}
	return out
}

func sortExpirations(expis []Expiration) {
	sort.Slice(expis, func(i, j int) bool {
		return expis[i].Info.Date.Before(expis[j].Info.Date)
	})
}
