package quote

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/Rhymond/go-money"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultAPIKey        = "demo"
	DefaultBaseURL       = "https://www.alphavantage.co/query"
	DefaultCurrency      = money.USD
	DefaultFallbackPrice = 100.0
	DefaultPricePath     = `$["Global Quote"]["05. price"]`
)

// Config configures a Resolver.
type Config struct {
	APIKey            string             `toml:"api_key"`
	BaseURL           string             `toml:"base_url"`
	Currency          string             `toml:"currency"`
	FallbackPrice     float64            `toml:"fallback_price"`
	PricePath         string             `toml:"price_path"`
	RequestsPerMinute int                `toml:"requests_per_minute"` // 0 is unlimited
	KnownPrices       map[string]float64 `toml:"known_prices"`
}

// DefaultKnownPrices returns the built-in price table. Tickers listed here are
// never looked up online, which keeps reports deterministic and offline.
func DefaultKnownPrices() map[string]float64 {
	return map[string]float64{
		// Stocks
		"AAPL":  170.0,
		"TSLA":  700.0,
		"GOOGL": 2800.0,
		"MSFT":  350.0,
		"AMZN":  3200.0,
		"NVDA":  450.0,
		"META":  320.0,
		"BRK.B": 325.0,
		"JPM":   145.0,
		"V":     240.0,

		// Crypto
		"BTC-USD": 95000.0,
		"ETH-USD": 3800.0,
		"BNB-USD": 680.0,
		"ADA-USD": 1.2,
		"SOL-USD": 180.0,
	}
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		APIKey:        DefaultAPIKey,
		BaseURL:       DefaultBaseURL,
		Currency:      DefaultCurrency,
		FallbackPrice: DefaultFallbackPrice,
		PricePath:     DefaultPricePath,
		KnownPrices:   DefaultKnownPrices(),
	}
}

// fileConfig is the TOML form of Config, nil means unset.
type fileConfig struct {
	APIKey            *string            `toml:"api_key"`
	BaseURL           *string            `toml:"base_url"`
	Currency          *string            `toml:"currency"`
	FallbackPrice     *float64           `toml:"fallback_price"`
	PricePath         *string            `toml:"price_path"`
	RequestsPerMinute *int               `toml:"requests_per_minute"`
	KnownPrices       map[string]float64 `toml:"known_prices"`
}

// DecodeConfig reads a TOML configuration on top of DefaultConfig.
// A known_prices table replaces the default one entirely.
func DecodeConfig(r io.Reader) (Config, error) {
	var fc fileConfig
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("cannot decode configuration: %w", err)
	}

	cfg := DefaultConfig()
	if fc.APIKey != nil {
		cfg.APIKey = *fc.APIKey
	}
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.Currency != nil {
		cfg.Currency = *fc.Currency
	}
	if fc.FallbackPrice != nil {
		cfg.FallbackPrice = *fc.FallbackPrice
	}
	if fc.PricePath != nil {
		cfg.PricePath = *fc.PricePath
	}
	if fc.RequestsPerMinute != nil {
		cfg.RequestsPerMinute = *fc.RequestsPerMinute
	}
	if fc.KnownPrices != nil {
		cfg.KnownPrices = fc.KnownPrices
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads the TOML configuration file at path.
func LoadConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return Config{}, fmt.Errorf("%q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used by a Resolver.
func (c Config) Validate() error {
	if money.GetCurrency(c.Currency) == nil {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is empty")
	}
	if _, err := jsonpath.New(c.PricePath); err != nil {
		return fmt.Errorf("invalid price_path %q: %w", c.PricePath, err)
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be positive, got %d", c.RequestsPerMinute)
	}
	if c.FallbackPrice < 0 {
		return fmt.Errorf("fallback_price must be positive, got %v", c.FallbackPrice)
	}
	return nil
}
