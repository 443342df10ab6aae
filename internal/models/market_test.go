package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tradingDay(hour, minute int) time.Time {
	return time.Date(2026, 3, 16, hour, minute, 0, 0, time.UTC)
}

func TestMarketIsOpenAt(t *testing.T) {
	market := &Market{
		MarketID:     1,
		Status:       MarketOpen,
		OpeningHours: "09:00",
		ClosingHours: "16:00",
		Holidays:     []string{"2026-12-25"},
	}

	require.True(t, market.IsOpenAt(tradingDay(12, 30)))
	require.True(t, market.IsOpenAt(tradingDay(9, 0)), "opening minute is inside the window")
	require.True(t, market.IsOpenAt(tradingDay(16, 0)), "closing minute is inside the window")

	require.False(t, market.IsOpenAt(tradingDay(8, 59)))
	require.False(t, market.IsOpenAt(tradingDay(16, 1)))
}

func TestMarketClosedStatusWins(t *testing.T) {
	market := &Market{
		Status:       MarketClosed,
		OpeningHours: "00:00",
		ClosingHours: "23:59",
	}
	require.False(t, market.IsOpenAt(tradingDay(12, 0)), "closed flag overrides the schedule")
}

func TestMarketHoliday(t *testing.T) {
	market := &Market{
		Status:       MarketOpen,
		OpeningHours: "09:00",
		ClosingHours: "16:00",
		Holidays:     []string{"2026-03-16"},
	}
	require.False(t, market.IsOpenAt(tradingDay(12, 0)))

	market.Holidays = nil
	require.True(t, market.IsOpenAt(tradingDay(12, 0)))
}
