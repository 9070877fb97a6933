// Package quote resolves tickers to current prices.
//
// A ticker is first looked up in a table of known prices, then fetched live
// from an Alpha Vantage compatible GLOBAL_QUOTE endpoint, and finally given a
// fallback price. Resolution never fails as a whole: an individual failure is
// logged and recorded in the Resolution.
package quote

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/etnz/tracker"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Source tells where a price comes from.
type Source int

const (
	SourceKnown    Source = iota + 1 // known prices table
	SourceLive                       // quote endpoint
	SourceFallback                   // fallback price
)

func (s Source) String() string {
	switch s {
	case SourceKnown:
		return "known"
	case SourceLive:
		return "live"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of resolving a single ticker.
type Resolution struct {
	Ticker string
	Price  tracker.Money
	Source Source
	Err    *LookupError // set when Source is SourceFallback
}

// Resolver resolves tickers to prices. It is safe for concurrent use.
type Resolver struct {
	cfg     Config
	client  *http.Client
	logger  zerolog.Logger
	limiter *rate.Limiter
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client used for live lookups.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithLogger sets the logger, the default one discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver. cfg is expected to be valid, see Config.Validate.
func NewResolver(cfg Config, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:     cfg,
		client:  http.DefaultClient,
		logger:  zerolog.Nop(),
		limiter: rate.NewLimiter(rate.Inf, 0),
	}
	if cfg.RequestsPerMinute > 0 {
		r.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	for _, opt := range opts {
		opt(r)
	}
	r.client = newLoggingClient(r.client, r.logger)
	return r
}

// Lookup resolves every distinct ticker, in order of first appearance.
// Live lookups run concurrently, Lookup returns once they are all done.
func (r *Resolver) Lookup(ctx context.Context, tickers []string) []Resolution {
	var res []Resolution
	seen := make(map[string]bool)
	for _, t := range tickers {
		if seen[t] {
			continue
		}
		seen[t] = true
		res = append(res, Resolution{Ticker: t})
	}

	var wg sync.WaitGroup
	for i := range res {
		ticker := res[i].Ticker
		if price, ok := r.cfg.KnownPrices[ticker]; ok {
			res[i].Price = tracker.M(price, r.cfg.Currency)
			res[i].Source = SourceKnown
			continue
		}
		wg.Add(1)
		go func(out *Resolution) {
			defer wg.Done()
			price, err := r.fetchPrice(ctx, ticker)
			if err != nil {
				out.Price = tracker.M(r.cfg.FallbackPrice, r.cfg.Currency)
				out.Source = SourceFallback
				out.Err = err
				return
			}
			out.Price = tracker.M(price, r.cfg.Currency)
			out.Source = SourceLive
		}(&res[i])
	}
	wg.Wait()
	return res
}

// Resolve returns a price for every ticker. It implements tracker.PriceResolver.
// Tickers that could not be resolved get the fallback price and a warning.
func (r *Resolver) Resolve(ctx context.Context, tickers []string) tracker.PriceMap {
	prices := make(tracker.PriceMap, len(tickers))
	for _, res := range r.Lookup(ctx, tickers) {
		if res.Err != nil {
			r.logger.Warn().
				Str("ticker", res.Ticker).
				Stringer("reason", res.Err.Reason).
				Err(res.Err.Err).
				Msgf("could not fetch price for %s, using default %s", res.Ticker, res.Price)
		} else {
			r.logger.Debug().Str("ticker", res.Ticker).Stringer("source", res.Source).Str("price", res.Price.String()).Msg("price resolved")
		}
		prices[res.Ticker] = res.Price
	}
	return prices
}
