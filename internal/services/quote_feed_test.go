package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextPriceStaysInBand(t *testing.T) {
	for i := 0; i < 1000; i++ {
		price := nextPrice(100.0)
		require.GreaterOrEqual(t, price, 98.5-0.01)
		require.LessOrEqual(t, price, 101.5+0.01)

		// Prices are rounded to cents.
		require.InDelta(t, price, math.Round(price*100)/100, 1e-9)
	}
}

func TestNextPriceNeverDropsBelowOneCent(t *testing.T) {
	for i := 0; i < 100; i++ {
		require.GreaterOrEqual(t, nextPrice(0.01), 0.01)
	}
}
