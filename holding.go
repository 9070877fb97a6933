package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is one purchased position.
type Holding struct {
	Ticker        string
	Quantity      Quantity
	CostBasis     Money  // per unit
	DatePurchased string // displayed as is, never parsed
}

// decodeRecord splits a JSON object into its raw fields. Raw messages are kept
// to tell a missing field from a zero one, and a quoted number from a number.
// Keys are matched exactly and must be unique.
func decodeRecord(data []byte) (map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("holding must be an object")
	}
	fields := make(map[string]json.RawMessage)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string) // object keys are always strings
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("duplicate field %q", key)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		fields[key] = raw
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected content after the holding")
	}
	return fields, nil
}

// decodeHolding validates and converts a single record.
func decodeHolding(data []byte, currency string) (Holding, error) {
	rec, err := decodeRecord(data)
	if err != nil {
		return Holding{}, err
	}

	ticker, err := stringField("ticker", rec["ticker"])
	if err != nil {
		return Holding{}, err
	}
	if ticker == "" {
		return Holding{}, fmt.Errorf("field %q is empty", "ticker")
	}
	quantity, err := numberField("quantity", rec["quantity"])
	if err != nil {
		return Holding{}, err
	}
	costBasis, err := numberField("cost_basis", rec["cost_basis"])
	if err != nil {
		return Holding{}, err
	}
	purchased, err := stringField("date_purchased", rec["date_purchased"])
	if err != nil {
		return Holding{}, err
	}

	return Holding{
		Ticker:        ticker,
		Quantity:      Q(quantity),
		CostBasis:     M(costBasis, currency),
		DatePurchased: purchased,
	}, nil
}

func stringField(name string, raw json.RawMessage) (string, error) {
	if isMissing(raw) {
		return "", fmt.Errorf("missing field %q", name)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %q must be a string, got %s", name, raw)
	}
	return s, nil
}

func numberField(name string, raw json.RawMessage) (decimal.Decimal, error) {
	if isMissing(raw) {
		return decimal.Decimal{}, fmt.Errorf("missing field %q", name)
	}
	// decimal would happily accept a quoted number, the file format does not.
	var n json.Number
	if strings.HasPrefix(string(raw), `"`) || json.Unmarshal(raw, &n) != nil {
		return decimal.Decimal{}, fmt.Errorf("field %q must be a number, got %s", name, raw)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("field %q: %w", name, err)
	}
	if math.IsInf(d.InexactFloat64(), 0) {
		return decimal.Decimal{}, fmt.Errorf("field %q is out of range: %s", name, raw)
	}
	return d, nil
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// PriceMap maps a ticker to its current price.
type PriceMap map[string]Money

// PriceResolver resolves tickers to current prices.
// Resolve must return a price for every requested ticker.
type PriceResolver interface {
	Resolve(ctx context.Context, tickers []string) PriceMap
}

// HoldingWithPrice pairs a holding with its current price.
// All figures are derived on demand.
type HoldingWithPrice struct {
	Holding
	Price Money
}

// CurrentValue returns quantity * current price.
func (h HoldingWithPrice) CurrentValue() Money { return h.Price.Mul(h.Quantity) }

// TotalCost returns quantity * cost basis.
func (h HoldingWithPrice) TotalCost() Money { return h.CostBasis.Mul(h.Quantity) }

// GainLoss returns the current value minus the total cost.
func (h HoldingWithPrice) GainLoss() Money { return h.CurrentValue().Sub(h.TotalCost()) }

// GainLossPercentage returns the gain relative to the total cost, 0 when the
// total cost is zero.
func (h HoldingWithPrice) GainLossPercentage() Percent {
	return h.GainLoss().Ratio(h.TotalCost())
}
