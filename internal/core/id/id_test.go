package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsVersion7(t *testing.T) {
	u, err := uuid.Parse(New())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), u.Version())
}

func TestOrNew(t *testing.T) {
	given := "0190f2a8-6b1e-7c3a-9d4e-1f2a3b4c5d6e"
	assert.Equal(t, given, OrNew(given))

	for _, raw := range []string{"", "not-a-uuid", "<script>"} {
		got := OrNew(raw)
		assert.NotEqual(t, raw, got)
		assert.True(t, Valid(got))
	}
}
