package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ledger:
  path: /data/ledger.jsonl
  duplicates_file: /data/duplicates.txt
reporting:
  currency: USD
cache:
  rates_db: /data/rates.db
`), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/ledger.jsonl", cfg.Ledger.Path)
	assert.Equal(t, "/data/duplicates.txt", cfg.Ledger.DuplicatesFile)
	assert.Equal(t, "USD", cfg.Reporting.Currency)
	assert.Equal(t, "/data/rates.db", cfg.Cache.RatesDB)
}

func TestLoadFromFile_DefaultsSurvivePartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  path: mine.jsonl\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine.jsonl", cfg.Ledger.Path)
	assert.Equal(t, "EUR", cfg.Reporting.Currency)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Reporting.Currency = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Reporting.Currency = "USD"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
