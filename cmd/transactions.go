package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/XMabbX/CryptoTracker/renderer"
	"github.com/google/subcommands"
)

type transactionsCmd struct{}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list the ledger history of one coin" }
func (*transactionsCmd) Usage() string {
	return `ctk transactions <tick>

  Prints every ledger entry of the coin, oldest first.
`
}

func (*transactionsCmd) SetFlags(_ *flag.FlagSet) {}

func (p *transactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	coin := ledger.Coin(tick)
	if coin == nil {
		fmt.Fprintf(os.Stderr, "Error: coin %s is not in the ledger\n", tick)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.TransactionsMarkdown(coin))
	return subcommands.ExitSuccess
}
