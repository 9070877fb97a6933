package quote

import "fmt"

// Reason tells why a live lookup did not produce a price.
type Reason int

const (
	ReasonNetwork       Reason = iota + 1 // request could not be completed
	ReasonStatus                          // non 200 HTTP status
	ReasonMalformed                       // body is not a JSON object
	ReasonProviderError                   // provider returned an "Error Message"
	ReasonProviderNote                    // provider returned a rate-limit "Note" or "Information"
	ReasonNoQuote                         // no price in the response
	ReasonPriceParse                      // price is not a number
)

var reasonNames = map[Reason]string{
	ReasonNetwork:       "network failure",
	ReasonStatus:        "unexpected status",
	ReasonMalformed:     "malformed response",
	ReasonProviderError: "provider error",
	ReasonProviderNote:  "provider note",
	ReasonNoQuote:       "no quote",
	ReasonPriceParse:    "invalid price",
}

func (r Reason) String() string {
	if s, ok := reasonNames[r]; ok {
		return s
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// LookupError is the unresolved outcome of a live lookup.
type LookupError struct {
	Ticker string
	Reason Reason
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("cannot fetch price for %s: %v: %v", e.Ticker, e.Reason, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
