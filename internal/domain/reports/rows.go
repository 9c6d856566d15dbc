package reports

import (
	"sort"
	"strings"
	"time"

	"erpreports/internal/core/types"
)

// SortRowsDesc orders rows by the given columns, each descending.
// Missing and NULL values sort last.
func SortRowsDesc(rows []Row, columns ...string) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, col := range columns {
			if c := compareValues(rows[i][col], rows[j][col]); c != 0 {
				return c > 0
			}
		}
		return false
	})
}

// compareValues returns -1, 0 or 1. nil is lower than any value.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch x := a.(type) {
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	case types.Amount:
		if y, ok := b.(types.Amount); ok {
			return x.Cmp(y.Decimal)
		}
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y)
		}
	}

	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case types.Amount:
		return x.InexactFloat64(), true
	}
	return 0, false
}
