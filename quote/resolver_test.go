package quote

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/etnz/tracker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quoteServer serves body for every request and counts requests per symbol.
type quoteServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newQuoteServer(t *testing.T, handler func(symbol string) (int, string)) *quoteServer {
	t.Helper()
	s := &quoteServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		q := r.URL.Query()
		if q.Get("function") != "GLOBAL_QUOTE" || q.Get("apikey") != "test-key" {
			http.Error(w, "bad query", http.StatusBadRequest)
			return
		}
		status, body := handler(q.Get("symbol"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(s.Close)
	return s
}

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	return cfg
}

func globalQuote(price string) string {
	return `{"Global Quote": {"01. symbol": "IBM", "05. price": "` + price + `", "07. latest trading day": "2025-01-02"}}`
}

func TestResolver_KnownPrices(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, globalQuote("1.00") })
	r := NewResolver(testConfig(srv.URL))

	prices := r.Resolve(t.Context(), []string{"AAPL", "BTC-USD", "ADA-USD"})

	assert.True(t, prices["AAPL"].Equal(tracker.M(170.0, "USD")), "AAPL = %v", prices["AAPL"])
	assert.True(t, prices["BTC-USD"].Equal(tracker.M(95000.0, "USD")), "BTC-USD = %v", prices["BTC-USD"])
	assert.True(t, prices["ADA-USD"].Equal(tracker.M(1.2, "USD")), "ADA-USD = %v", prices["ADA-USD"])
	assert.Equal(t, int32(0), srv.calls.Load(), "known prices must not be fetched")
}

func TestResolver_KnownPricesAreCaseSensitive(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, globalQuote("171.5") })
	r := NewResolver(testConfig(srv.URL))

	res := r.Lookup(t.Context(), []string{"aapl"})
	require.Len(t, res, 1)
	assert.Equal(t, SourceLive, res[0].Source)
	assert.True(t, res[0].Price.Equal(tracker.M(171.5, "USD")))
}

func TestResolver_KnownPricesOffline(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listens there
	r := NewResolver(cfg)

	prices := r.Resolve(t.Context(), []string{"AAPL"})
	assert.True(t, prices["AAPL"].Equal(tracker.M(170.0, "USD")))
}

func TestResolver_Live(t *testing.T) {
	srv := newQuoteServer(t, func(symbol string) (int, string) {
		if symbol == "IBM" {
			return http.StatusOK, globalQuote("231.4400")
		}
		return http.StatusOK, `{"Global Quote": {}}`
	})
	r := NewResolver(testConfig(srv.URL))

	res := r.Lookup(t.Context(), []string{"IBM"})
	require.Len(t, res, 1)
	assert.Equal(t, SourceLive, res[0].Source)
	assert.Nil(t, res[0].Err)
	assert.True(t, res[0].Price.Equal(tracker.M(231.44, "USD")), "IBM = %v", res[0].Price)
}

func TestResolver_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Reason
	}{
		{name: "empty quote", status: http.StatusOK, body: `{"Global Quote": {}}`, want: ReasonNoQuote},
		{name: "no quote", status: http.StatusOK, body: `{}`, want: ReasonNoQuote},
		{name: "error message", status: http.StatusOK, body: `{"Error Message": "Invalid API call."}`, want: ReasonProviderError},
		{name: "note", status: http.StatusOK, body: `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`, want: ReasonProviderNote},
		{name: "information", status: http.StatusOK, body: `{"Information": "The demo API key is for demo purposes only."}`, want: ReasonProviderNote},
		{name: "not numeric", status: http.StatusOK, body: globalQuote("N/A"), want: ReasonPriceParse},
		{name: "not json", status: http.StatusOK, body: `<html>oops</html>`, want: ReasonMalformed},
		{name: "json list", status: http.StatusOK, body: `[1, 2]`, want: ReasonMalformed},
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, want: ReasonStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newQuoteServer(t, func(string) (int, string) { return tt.status, tt.body })
			r := NewResolver(testConfig(srv.URL))

			res := r.Lookup(t.Context(), []string{"UNKNOWN"})
			require.Len(t, res, 1)
			assert.Equal(t, SourceFallback, res[0].Source)
			assert.True(t, res[0].Price.Equal(tracker.M(100.0, "USD")), "price = %v", res[0].Price)
			require.NotNil(t, res[0].Err)
			assert.Equal(t, tt.want, res[0].Err.Reason, "error: %v", res[0].Err)
			assert.Equal(t, "UNKNOWN", res[0].Err.Ticker)
			assert.Equal(t, int32(1), srv.calls.Load(), "exactly one attempt")
		})
	}
}

func TestResolver_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing listens anymore

	r := NewResolver(testConfig(url))
	prices := r.Resolve(t.Context(), []string{"UNKNOWN"})
	assert.True(t, prices["UNKNOWN"].Equal(tracker.M(100.0, "USD")))

	res := r.Lookup(t.Context(), []string{"UNKNOWN"})
	require.NotNil(t, res[0].Err)
	assert.Equal(t, ReasonNetwork, res[0].Err.Reason)
}

func TestResolver_Cancelled(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, globalQuote("1") })
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	r := NewResolver(testConfig(srv.URL))
	res := r.Lookup(ctx, []string{"UNKNOWN"})
	require.Len(t, res, 1)
	assert.Equal(t, SourceFallback, res[0].Source)
	assert.Equal(t, ReasonNetwork, res[0].Err.Reason)
	assert.ErrorIs(t, res[0].Err, context.Canceled)
}

func TestResolver_Duplicates(t *testing.T) {
	srv := newQuoteServer(t, func(symbol string) (int, string) { return http.StatusOK, globalQuote("42") })
	r := NewResolver(testConfig(srv.URL))

	res := r.Lookup(t.Context(), []string{"IBM", "AAPL", "IBM", "XYZ", "AAPL"})
	require.Len(t, res, 3)
	assert.Equal(t, "IBM", res[0].Ticker)
	assert.Equal(t, "AAPL", res[1].Ticker)
	assert.Equal(t, "XYZ", res[2].Ticker)
	assert.Equal(t, int32(2), srv.calls.Load())

	prices := r.Resolve(t.Context(), []string{"IBM", "IBM"})
	assert.Len(t, prices, 1)
}

func TestResolver_Empty(t *testing.T) {
	r := NewResolver(testConfig("http://127.0.0.1:1"))
	assert.Empty(t, r.Lookup(t.Context(), nil))
	assert.Empty(t, r.Resolve(t.Context(), []string{}))
}

func TestResolver_ManyConcurrent(t *testing.T) {
	srv := newQuoteServer(t, func(symbol string) (int, string) {
		if symbol == "BAD" {
			return http.StatusOK, `{"Error Message": "Invalid API call."}`
		}
		return http.StatusOK, globalQuote("10.5")
	})
	r := NewResolver(testConfig(srv.URL))

	var tickers []string
	for i := range 20 {
		tickers = append(tickers, fmt.Sprintf("T%02d", i))
	}
	tickers = append(tickers, "BAD")

	prices := r.Resolve(t.Context(), tickers)
	require.Len(t, prices, 21)
	for _, ticker := range tickers[:20] {
		assert.True(t, prices[ticker].Equal(tracker.M(10.5, "USD")), ticker)
	}
	assert.True(t, prices["BAD"].Equal(tracker.M(100.0, "USD")))
}

func TestResolver_WarnsOnFallback(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, `{"Note": "slow down"}` })
	var buf bytes.Buffer
	r := NewResolver(testConfig(srv.URL), WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))

	r.Resolve(t.Context(), []string{"XYZ", "AAPL"})

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"ticker":"XYZ"`)
	assert.Contains(t, buf.String(), `"reason":"provider note"`)
	assert.NotContains(t, buf.String(), `"ticker":"AAPL"`)
}

func TestResolver_CustomConfig(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, `{"quote": {"price": 12.25}}` })
	cfg := testConfig(srv.URL)
	cfg.Currency = "EUR"
	cfg.FallbackPrice = 1
	cfg.PricePath = `$.quote.price`
	cfg.KnownPrices = map[string]float64{"HOME": 3}
	require.NoError(t, cfg.Validate())
	r := NewResolver(cfg)

	prices := r.Resolve(t.Context(), []string{"HOME", "AAPL"})
	assert.True(t, prices["HOME"].Equal(tracker.M(3.0, "EUR")))
	assert.True(t, prices["AAPL"].Equal(tracker.M(12.25, "EUR")), "AAPL is no longer a known price: %v", prices["AAPL"])
}

func TestResolver_RateLimited(t *testing.T) {
	srv := newQuoteServer(t, func(string) (int, string) { return http.StatusOK, globalQuote("5") })
	cfg := testConfig(srv.URL)
	cfg.RequestsPerMinute = 1
	r := NewResolver(cfg)

	// the first request uses the burst, the second would wait a full minute.
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	first := r.Lookup(ctx, []string{"ONE"})
	require.Equal(t, SourceLive, first[0].Source)

	cancel()
	second := r.Lookup(ctx, []string{"TWO"})
	assert.Equal(t, SourceFallback, second[0].Source)
	assert.Equal(t, ReasonNetwork, second[0].Err.Reason)
	assert.Equal(t, int32(1), srv.calls.Load())
}
