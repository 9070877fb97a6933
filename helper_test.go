package tracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// staticPrices is a PriceResolver answering from a fixed map.
type staticPrices PriceMap

func (s staticPrices) Resolve(_ context.Context, tickers []string) PriceMap {
	prices := make(PriceMap)
	for _, t := range tickers {
		prices[t] = s[t]
	}
	return prices
}

// writeFile writes content in a temporary file and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// valued returns a HoldingWithPrice with USD amounts.
func valued(ticker string, quantity, costBasis, price float64) HoldingWithPrice {
	return HoldingWithPrice{
		Holding: Holding{Ticker: ticker, Quantity: Q(quantity), CostBasis: USD(costBasis), DatePurchased: "2023-01-01"},
		Price:   USD(price),
	}
}
