// Package config loads the tracker configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds everything the tracker needs to run: where the ledger
// lives, the reporting currency and the local caches.
type Config struct {
	Ledger    LedgerConfig    `yaml:"ledger"`
	Reporting ReportingConfig `yaml:"reporting"`
	Cache     CacheConfig     `yaml:"cache"`
}

// LedgerConfig locates the persisted ledger and its companions.
type LedgerConfig struct {
	// Path of the JSONL transaction file.
	Path string `yaml:"path"`
	// DuplicatesFile lists acknowledged duplicate transaction ids,
	// one per line. Optional.
	DuplicatesFile string `yaml:"duplicates_file,omitempty"`
	// StatementsDir holds the exchange statement CSV exports to
	// import. Optional.
	StatementsDir string `yaml:"statements_dir,omitempty"`
}

// ReportingConfig selects how analytics are expressed.
type ReportingConfig struct {
	// Currency is the fiat reporting currency, e.g. "EUR".
	Currency string `yaml:"currency"`
}

// CacheConfig locates the local market data cache.
type CacheConfig struct {
	// RatesDB is the path of the SQLite conversion rate cache.
	// Empty disables the cache.
	RatesDB string `yaml:"rates_db,omitempty"`
}

// Default returns the configuration used when no file exists: a ledger
// in the working directory, EUR reporting and a rate cache next to it.
func Default() *Config {
	return &Config{
		Ledger:    LedgerConfig{Path: "ledger.jsonl"},
		Reporting: ReportingConfig{Currency: "EUR"},
		Cache:     CacheConfig{RatesDB: "rates.db"},
	}
}

// LoadFromFile loads and validates a YAML configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load loads path when it exists, the defaults otherwise.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFromFile(path)
}

// SaveToFile writes the configuration as YAML, creating parent
// directories as needed.
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Ledger.Path == "" {
		return fmt.Errorf("ledger.path is required")
	}
	if c.Reporting.Currency == "" {
		return fmt.Errorf("reporting.currency is required")
	}
	return nil
}
