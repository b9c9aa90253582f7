package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type removeCoinCmd struct {
	force bool
}

func (*removeCoinCmd) Name() string     { return "remove-coin" }
func (*removeCoinCmd) Synopsis() string { return "remove a whole coin from the ledger" }
func (*removeCoinCmd) Usage() string {
	return `ctk remove-coin [-force] <tick>

  Removes a coin and all its transactions from the ledger. A coin that
  still holds transactions is only removed with -force; individual
  transactions are never removed.
`
}

func (p *removeCoinCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.force, "force", false, "Remove the coin even if it has transactions.")
}

func (p *removeCoinCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one coin tick")
		return subcommands.ExitUsageError
	}
	tick := strings.ToUpper(f.Arg(0))

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
	if err := ledger.RemoveCoin(tick, p.force); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(cfg, ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed %s from %s\n", tick, cfg.Ledger.Path)
	return subcommands.ExitSuccess
}
