// Package types provides value types shared by the report layers.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is an exact numeric value (money, quantities) that renders as a JSON number.
//
// SQL Server DECIMAL/MONEY columns arrive as text; carrying them as decimal keeps
// cents exact through aggregation and avoids the quoted output of decimal.Decimal.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromString parses a decimal string.
func AmountFromString(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Amount{Decimal: d}, nil
}

// MarshalJSON encodes Amount as a JSON number (not string).
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}
