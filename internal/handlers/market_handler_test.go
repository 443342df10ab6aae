package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidHours(t *testing.T) {
	ok := []string{"00:00", "09:00", "16:30", "23:59"}
	for _, s := range ok {
		require.True(t, validHours(&s), s)
	}

	bad := []string{"24:00", "9am", "16", "", "09:60"}
	for _, s := range bad {
		require.False(t, validHours(&s), s)
	}

	require.True(t, validHours(nil), "nil means field absent, nothing to validate")
}
