package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stock-trading-platform/internal/models"
)

func newTestIndex(t *testing.T) *StockIndex {
	t.Helper()
	idx, err := NewStockIndex()
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })

	require.NoError(t, idx.Rebuild([]models.Stock{
		{Ticker: "AAPL", CompanyName: "Apple Inc."},
		{Ticker: "GOOGL", CompanyName: "Alphabet Inc."},
		{Ticker: "MSFT", CompanyName: "Microsoft Corporation"},
	}))
	return idx
}

func TestSearchByTicker(t *testing.T) {
	idx := newTestIndex(t)

	tickers, err := idx.Search("AAPL")
	require.NoError(t, err)
	require.NotEmpty(t, tickers)
	require.Equal(t, "AAPL", tickers[0], "exact ticker match ranks first")
}

func TestSearchByTickerPrefix(t *testing.T) {
	idx := newTestIndex(t)

	tickers, err := idx.Search("goog")
	require.NoError(t, err)
	require.Contains(t, tickers, "GOOGL")
}

func TestSearchByCompanyName(t *testing.T) {
	idx := newTestIndex(t)

	tickers, err := idx.Search("microsoft")
	require.NoError(t, err)
	require.Contains(t, tickers, "MSFT")
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := newTestIndex(t)

	tickers, err := idx.Search("   ")
	require.NoError(t, err)
	require.Empty(t, tickers)
}

func TestAddAndRemove(t *testing.T) {
	idx := newTestIndex(t)

	require.NoError(t, idx.Add(models.Stock{Ticker: "TSLA", CompanyName: "Tesla Inc."}))
	tickers, err := idx.Search("tesla")
	require.NoError(t, err)
	require.Contains(t, tickers, "TSLA")

	require.NoError(t, idx.Remove("TSLA"))
	tickers, err = idx.Search("tesla")
	require.NoError(t, err)
	require.NotContains(t, tickers, "TSLA")
}
