package mssql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erpreports/internal/core/types"
)

func TestNormalizeRow(t *testing.T) {
	// UNIQUEIDENTIFIER bytes as sent by SQL Server (first three groups little-endian)
	guid := []byte{
		0x78, 0x56, 0x34, 0x12,
		0x34, 0x12,
		0x78, 0x56,
		0x9a, 0xbc, 0xde, 0xf0, 0x12, 0x34, 0x56, 0x78,
	}
	when := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

	row := map[string]any{
		"total":    []byte("1234.5000"),
		"negativo": []byte("-0.01"),
		"guid":     guid,
		"firma":    []byte{0x00, 0xff, 0x10},
		"nombre":   "ACME",
		"fecha":    when,
		"folio":    int64(7),
		"vacio":    nil,
		"saldo":    decimal.RequireFromString("10.5"),
	}
	NormalizeRow(row)

	total, ok := row["total"].(types.Amount)
	require.True(t, ok, "%T", row["total"])
	assert.Equal(t, "1234.5", total.String())

	neg, ok := row["negativo"].(types.Amount)
	require.True(t, ok)
	assert.True(t, neg.IsNegative())

	assert.Equal(t, "12345678-1234-5678-9ABC-DEF012345678", row["guid"])
	assert.Equal(t, "AP8Q", row["firma"])

	saldo, ok := row["saldo"].(types.Amount)
	require.True(t, ok)
	assert.Equal(t, "10.5", saldo.String())

	assert.Equal(t, "ACME", row["nombre"])
	assert.Equal(t, when, row["fecha"])
	assert.Equal(t, int64(7), row["folio"])
	assert.Nil(t, row["vacio"])
}
