package filter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"erpreports/internal/core/apperror"
)

// Row caps for raw/detail shapes and top-N rankings.
const (
	MinLimit = 1
	MaxLimit = 1000

	DefaultRawLimit = 100
	DefaultTopLimit = 10

	maxSearchLen = 100
)

// ParseID parses an optional entity identifier (supplier, client, product, warehouse).
// Empty input yields nil.
func ParseID(param, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, apperror.NewInvalidFilter(param, param+" must be a positive integer").
			WithDetail("value", raw)
	}
	return &v, nil
}

// ParseInt parses an optional integer code (status flags and similar).
func ParseInt(param, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.NewInvalidFilter(param, param+" must be an integer").
			WithDetail("value", raw)
	}
	return &v, nil
}

// ParseDecimal parses an optional numeric bound such as a stock level.
func ParseDecimal(param, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.NewInvalidFilter(param, param+" must be a number").
			WithDetail("value", raw)
	}
	return &d, nil
}

// ParseLimit parses a row cap. Missing values take def; values outside
// [MinLimit, MaxLimit] are clamped. The result is safe to interpolate into TOP().
func ParseLimit(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ClampLimit(def), nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewInvalidFilter("limit", "limit must be an integer").
			WithDetail("value", raw)
	}
	return ClampLimit(v), nil
}

// ClampLimit bounds n to [MinLimit, MaxLimit].
func ClampLimit(n int) int {
	if n < MinLimit {
		return MinLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// Search normalizes a free-text substring filter.
func Search(raw string) string {
	s := strings.TrimSpace(raw)
	if r := []rune(s); len(r) > maxSearchLen {
		s = string(r[:maxSearchLen])
	}
	return s
}

// ParseBool parses an optional flag; empty input yields def.
func ParseBool(param, raw string, def bool) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.NewInvalidFilter(param, param+" must be true or false").
			WithDetail("value", raw)
	}
	return v, nil
}
