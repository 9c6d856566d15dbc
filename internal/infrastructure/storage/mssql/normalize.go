package mssql

import (
	"encoding/base64"

	mssqldb "github.com/microsoft/go-mssqldb"
	"github.com/shopspring/decimal"

	"erpreports/internal/core/types"
)

// NormalizeRow rewrites driver values that do not render well as JSON.
//
// The driver returns character columns as string, so a []byte is either a
// DECIMAL/MONEY value in text form (becomes a numeric Amount), a
// UNIQUEIDENTIFIER (16 bytes, rendered as a GUID string) or binary data
// (rendered as base64).
func NormalizeRow(row map[string]any) {
	for k, v := range row {
		row[k] = normalizeValue(v)
	}
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return normalizeBytes(x)
	case decimal.Decimal:
		return types.NewAmount(x)
	default:
		return v
	}
}

func normalizeBytes(b []byte) any {
	if a, err := types.AmountFromString(string(b)); err == nil {
		return a
	}
	if len(b) == 16 {
		var u mssqldb.UniqueIdentifier
		if err := u.Scan(b); err == nil {
			return u.String()
		}
	}
	return base64.StdEncoding.EncodeToString(b)
}
