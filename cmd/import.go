package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	cryptotracker "github.com/XMabbX/CryptoTracker"
	"github.com/XMabbX/CryptoTracker/binance"
	"github.com/google/subcommands"
)

type importCmd struct {
	dir string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import Binance statement CSV exports into the ledger" }
func (*importCmd) Usage() string {
	return `ctk import [-dir <directory>] [<file.csv> ...]

  Reads Binance account statement exports, validates the batch against
  the current ledger (coin registry, quantity signs, duplicates) and
  appends it. The batch is atomic: one bad row rejects the whole import
  and the ledger file is left untouched.

Usage Examples:
# Import every export in the statements directory from the config.
$ ctk import

# Import one specific export.
$ ctk import part-00001.csv

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.dir, "dir", "", "Directory of statement CSV files. Defaults to the configured statements_dir.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	protos, err := p.read(cfg.Ledger.StatementsDir, f.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if len(protos) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing to import.")
		return subcommands.ExitSuccess
	}

	txs, err := ledger.ValidateImport(protos)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: import rejected:", err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(txs...); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(cfg, ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %s\n", len(txs), cfg.Ledger.Path)
	return subcommands.ExitSuccess
}

// read collects the proto transactions from the explicit files, the
// -dir flag, or the configured statements directory, in that order.
func (p *importCmd) read(configured string, files []string) ([]cryptotracker.ProtoTransaction, error) {
	if len(files) > 0 {
		var protos []cryptotracker.ProtoTransaction
		for _, file := range files {
			batch, err := binance.ReadStatementFile(file)
			if err != nil {
				return nil, err
			}
			protos = append(protos, batch...)
		}
		return protos, nil
	}

	dir := p.dir
	if dir == "" {
		dir = configured
	}
	if dir == "" {
		return nil, fmt.Errorf("no statement files given and no statements_dir configured")
	}
	return binance.ReadStatementDir(dir)
}
