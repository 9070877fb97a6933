package tracker

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrRead is returned when the portfolio file cannot be read.
	ErrRead = errors.New("cannot read portfolio")
	// ErrParse is returned when the portfolio content is not a valid list of holdings.
	ErrParse = errors.New("cannot parse portfolio")
)

// Portfolio is the ordered list of holdings loaded from a file.
type Portfolio struct {
	holdings []Holding
}

// NewPortfolio returns a portfolio made of the given holdings, in order.
func NewPortfolio(holdings ...Holding) *Portfolio {
	return &Portfolio{holdings: append([]Holding(nil), holdings...)}
}

// Len returns the number of holdings.
func (p *Portfolio) Len() int { return len(p.holdings) }

// Holdings returns a copy of the holdings in file order.
func (p *Portfolio) Holdings() []Holding {
	return append([]Holding(nil), p.holdings...)
}

// Tickers returns one ticker per holding, in holding order. Duplicates are kept.
func (p *Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(p.holdings))
	for _, h := range p.holdings {
		tickers = append(tickers, h.Ticker)
	}
	return tickers
}

// LoadPortfolio reads the portfolio file at path. Files with a ".jsonl"
// extension hold one holding per line, any other file holds a JSON array.
// Cost basis are expressed in currency.
//
// Errors wrap ErrRead or ErrParse, nothing is returned on partial success.
func LoadPortfolio(path, currency string) (*Portfolio, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrRead, path, err)
	}
	decode := DecodePortfolio
	if filepath.Ext(path) == ".jsonl" {
		decode = DecodePortfolioLines
	}
	p, err := decode(bytes.NewReader(content), currency)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return p, nil
}

// DecodePortfolio decodes a JSON array of holdings.
func DecodePortfolio(r io.Reader, currency string) (*Portfolio, error) {
	var records []json.RawMessage
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: expecting a list of holdings", ErrParse)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected content after the list of holdings", ErrParse)
	}

	p := &Portfolio{holdings: make([]Holding, 0, len(records))}
	for i, rec := range records {
		h, err := decodeHolding(rec, currency)
		if err != nil {
			return nil, fmt.Errorf("%w: holding #%d: %w", ErrParse, i+1, err)
		}
		p.holdings = append(p.holdings, h)
	}
	return p, nil
}

// DecodePortfolioLines decodes holdings from JSONL data, one object per line.
// Blank lines are skipped.
func DecodePortfolioLines(r io.Reader, currency string) (*Portfolio, error) {
	p := &Portfolio{}
	br := bufio.NewReader(r)
	for line := 1; ; line++ {
		b, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}
		if b := bytes.TrimSpace(b); len(b) > 0 { // Skip empty lines
			h, herr := decodeHolding(b, currency)
			if herr != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrParse, line, herr)
			}
			p.holdings = append(p.holdings, h)
		}
		if err == io.EOF {
			break
		}
	}
	return p, nil
}
