// Package cmd implements the `pt` command-line application reporting on a portfolio.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/quote"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const apiKeyEnv = "ALPHAVANTAGE_API_KEY"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to a TOML configuration file for price resolution.")
	apiKey     = flag.String("api-key", "", "Alpha Vantage API key. This flag takes precedence over the "+apiKeyEnv+" environment variable and the configuration file.")
	currency   = flag.String("currency", "", "Reporting currency, defaults to the configuration's (USD).")
	raw        = flag.Bool("raw", false, "print reports as raw markdown instead of rendering them for the terminal")
	verbose    = flag.Bool("v", false, "verbose logging")
)

// report output and diagnostics.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&balancesCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")
	c.Register(&performanceCmd{}, "reports")
}

// Names returns the names of the report subcommands.
func Names() []string {
	return []string{"balances", "allocation", "performance"}
}

// newLogger returns the stderr logger of the application.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).Level(level).With().Timestamp().Logger()
}

// loadConfig builds the resolver configuration from, in increasing order of
// precedence: defaults, the configuration file, the environment and the flags.
func loadConfig() (quote.Config, error) {
	// a .env file is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return quote.Config{}, fmt.Errorf("cannot load .env: %w", err)
	}

	cfg := quote.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = quote.LoadConfig(*configFile)
		if err != nil {
			return quote.Config{}, err
		}
	}
	if key := os.Getenv(apiKeyEnv); key != "" {
		cfg.APIKey = key
	}
	if *apiKey != "" {
		cfg.APIKey = *apiKey
	}
	if *currency != "" {
		cfg.Currency = *currency
	}
	return cfg, cfg.Validate()
}

// valuate loads the portfolio file and prices all of its holdings.
// It returns the reporting currency along with the valued holdings.
func valuate(ctx context.Context, path string) (string, []tracker.HoldingWithPrice, subcommands.ExitStatus) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading configuration: %v\n", err)
		return "", nil, subcommands.ExitFailure
	}

	p, err := tracker.LoadPortfolio(path, cfg.Currency)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading portfolio: %v\n", err)
		return "", nil, subcommands.ExitFailure
	}

	resolver := quote.NewResolver(cfg, quote.WithLogger(newLogger()))
	return cfg.Currency, tracker.Valuate(ctx, p, resolver), subcommands.ExitSuccess
}

// portfolioArg returns the single positional argument of a report subcommand.
func portfolioArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expecting exactly one portfolio file, got %d arguments\n", f.NArg())
		return "", false
	}
	return f.Arg(0), true
}
