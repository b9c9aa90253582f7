// Package cmd implements the CLI application to manage a crypto
// portfolio ledger and its analytics.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/XMabbX/CryptoTracker/binance"
	"github.com/XMabbX/CryptoTracker/config"
	"github.com/XMabbX/CryptoTracker/ratecache"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "ledger")
	c.Register(&transactionsCmd{}, "ledger")
	c.Register(&removeCoinCmd{}, "ledger")

	c.Register(&summaryCmd{}, "analytics")
	c.Register(&statusCmd{}, "analytics")

	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cryptotracker.yaml", "Path to the configuration file")

// LoadConfig reads the app configuration, falling back to defaults
// when the file does not exist.
func LoadConfig() (*config.Config, error) {
	return config.Load(*configFile)
}

// DecodeLedger loads the ledger from the configured JSONL file. A
// missing file yields an empty ledger.
func DecodeLedger(cfg *config.Config) (*cryptotracker.Ledger, error) {
	ledger := cryptotracker.NewLedger(cfg.Ledger.Path, cryptotracker.DefaultRegistry())

	if cfg.Ledger.DuplicatesFile != "" {
		f, err := os.Open(cfg.Ledger.DuplicatesFile)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not open duplicates file %q: %w", cfg.Ledger.DuplicatesFile, err)
		}
		if err == nil {
			ids, err := cryptotracker.ReadDuplicateIDs(f)
			f.Close()
			if err != nil {
				return nil, fmt.Errorf("could not read duplicates file %q: %w", cfg.Ledger.DuplicatesFile, err)
			}
			ledger.AcknowledgeDuplicates(ids...)
		}
	}

	f, err := os.Open(cfg.Ledger.Path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("ledger file %q does not exist, starting empty", cfg.Ledger.Path)
			return ledger, nil
		}
		return nil, fmt.Errorf("could not open ledger file %q: %w", cfg.Ledger.Path, err)
	}
	defer f.Close()

	protos, err := cryptotracker.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", cfg.Ledger.Path, err)
	}
	txs, err := ledger.ValidateImport(protos)
	if err != nil {
		return nil, fmt.Errorf("ledger file %q is not consistent: %w", cfg.Ledger.Path, err)
	}
	if err := ledger.Append(txs...); err != nil {
		return nil, err
	}
	return ledger, nil
}

// EncodeLedger writes the whole ledger back to the configured file.
func EncodeLedger(cfg *config.Config, ledger *cryptotracker.Ledger) error {
	f, err := os.Create(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("could not write ledger file %q: %w", cfg.Ledger.Path, err)
	}
	defer f.Close()
	return cryptotracker.EncodeLedger(f, ledger)
}

// NewRates builds the conversion rate provider: the Binance client,
// wrapped in the SQLite cache when one is configured. The returned
// closer is nil when there is nothing to close.
func NewRates(cfg *config.Config) (cryptotracker.RateProvider, func() error, error) {
	client := binance.NewClient()
	if cfg.Cache.RatesDB == "" {
		return client, nil, nil
	}
	cache, err := ratecache.Open(cfg.Cache.RatesDB, client)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open rate cache %q: %w", cfg.Cache.RatesDB, err)
	}
	return cache, cache.Close, nil
}

// NewPipeline assembles the analytics pipeline for the loaded ledger.
func NewPipeline(cfg *config.Config, ledger *cryptotracker.Ledger) (*cryptotracker.Pipeline, func() error, error) {
	rates, closer, err := NewRates(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cryptotracker.NewPipeline(ledger, rates, cfg.Reporting.Currency), closer, nil
}
