// Package types holds wire-level value types shared across the SDK.
package types

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Nullable is a decimal that may be absent. Market-data feeds report
// unavailable greeks and volatilities as the string "NaN"; those decode as
// invalid so they can never participate in arithmetic by accident.
type Nullable struct {
	Decimal decimal.Decimal
	Valid   bool
}

// FromDecimal wraps a present decimal value.
func FromDecimal(d decimal.Decimal) Nullable {
	return Nullable{Decimal: d, Valid: true}
}

// FromString parses s into a present value, panicking on bad input.
// Intended for constants and tests.
func FromString(s string) Nullable {
	return FromDecimal(decimal.RequireFromString(s))
}

var null = []byte("null")

// UnmarshalJSON accepts a JSON number, a quoted number, "NaN", or null.
// "NaN" and null decode as invalid.
func (n *Nullable) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, null) {
		*n = Nullable{}
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	if s := string(data); s == "NaN" || s == "nan" || s == "-NaN" {
		*n = Nullable{}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse nullable decimal %q: %w", data, err)
	}
	*n = Nullable{Decimal: d, Valid: true}
	return nil
}

// MarshalJSON renders the value as a quoted decimal, or null when absent.
func (n Nullable) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return null, nil
	}
	return n.Decimal.MarshalJSON()
}

// Or returns the value when present, def otherwise.
func (n Nullable) Or(def decimal.Decimal) decimal.Decimal {
	if !n.Valid {
		return def
	}
	return n.Decimal
}

func (n Nullable) String() string {
	if !n.Valid {
		return "NaN"
	}
	return n.Decimal.String()
}
