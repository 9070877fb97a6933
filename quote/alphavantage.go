package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Alpha Vantage signals failures with one of these keys instead of a quote.
const (
	errorMessageKey = "Error Message"
	noteKey         = "Note"
	informationKey  = "Information"
)

// fetchPrice performs a single GLOBAL_QUOTE request for ticker.
func (r *Resolver) fetchPrice(ctx context.Context, ticker string) (decimal.Decimal, *LookupError) {
	fail := func(reason Reason, err error) (decimal.Decimal, *LookupError) {
		return decimal.Decimal{}, &LookupError{Ticker: ticker, Reason: reason, Err: err}
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fail(ReasonNetwork, fmt.Errorf("rate limit wait: %w", err))
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", ticker)
	params.Set("apikey", r.cfg.APIKey)
	addr := r.cfg.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fail(ReasonNetwork, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fail(ReasonNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fail(ReasonStatus, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(ReasonNetwork, err)
	}

	var jobj map[string]any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return fail(ReasonMalformed, err)
	}
	if msg, ok := jobj[errorMessageKey]; ok {
		return fail(ReasonProviderError, fmt.Errorf("%v", msg))
	}
	for _, key := range []string{noteKey, informationKey} {
		if msg, ok := jobj[key]; ok {
			return fail(ReasonProviderNote, fmt.Errorf("%v", msg))
		}
	}

	jval, err := jsonpath.Get(r.cfg.PricePath, jobj)
	if err != nil {
		return fail(ReasonNoQuote, fmt.Errorf("%s: %w", r.cfg.PricePath, err))
	}
	// jsonpath may return a list of 1 answer instead of the answer.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return fail(ReasonNoQuote, fmt.Errorf("%s: no match", r.cfg.PricePath))
		}
		jval = jlist[0]
	}

	price, err := parsePrice(jval)
	if err != nil {
		return fail(ReasonPriceParse, err)
	}
	return price, nil
}

// parsePrice reads a price sent either as a string or as a number.
func parsePrice(jval any) (decimal.Decimal, error) {
	switch v := jval.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("price %q is not a number", v)
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case nil:
		return decimal.Decimal{}, errors.New("price is null")
	default:
		return decimal.Decimal{}, fmt.Errorf("price %v is neither a string nor a number", v)
	}
}
