package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/XMabbX/CryptoTracker/config"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStatement = `User_ID,UTC_Time,Account,Operation,Coin,Change,Remark
1,2021-05-04 10:30:00,Spot,Deposit,EUR,1000.00000000,
1,2021-05-04 10:31:00,Spot,Buy,BTC,0.01577007,
1,2021-05-04 10:31:00,Spot,Fee,BTC,-0.00001577,
`

func setupApp(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.Ledger.Path = filepath.Join(dir, "ledger.jsonl")
	cfg.Cache.RatesDB = ""

	cfgPath := filepath.Join(dir, "cryptotracker.yaml")
	require.NoError(t, cfg.SaveToFile(cfgPath))

	old := *configFile
	*configFile = cfgPath
	t.Cleanup(func() { *configFile = old })
	return cfg
}

func TestImportCmd(t *testing.T) {
	cfg := setupApp(t)

	csvPath := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testStatement), 0o644))

	c := &importCmd{}
	f := flag.NewFlagSet("import", flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse([]string{csvPath}))

	status := c.Execute(context.Background(), f)
	require.Equal(t, subcommands.ExitSuccess, status)

	ledger, err := DecodeLedger(cfg)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"BTC", "EUR"}, ledger.Ticks())
	assert.Len(t, ledger.Coin("BTC").Transactions, 2)
}

func TestImportCmd_RejectsDuplicateReimport(t *testing.T) {
	setupApp(t)

	csvPath := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testStatement), 0o644))

	run := func() subcommands.ExitStatus {
		c := &importCmd{}
		f := flag.NewFlagSet("import", flag.ContinueOnError)
		c.SetFlags(f)
		require.NoError(t, f.Parse([]string{csvPath}))
		return c.Execute(context.Background(), f)
	}

	require.Equal(t, subcommands.ExitSuccess, run())
	assert.Equal(t, subcommands.ExitFailure, run(), "re-importing the same statement must fail on duplicates")
}
