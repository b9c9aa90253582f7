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

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "display the detailed analytics of one coin" }
func (*statusCmd) Usage() string {
	return `ctk status <tick>

  Runs the analytics for one coin and prints the detailed report: the
  position, every buy lot with its remaining quantity and gains, the
  amortizations drawn by sells, staking earnings and fees.

Usage Examples:
$ ctk status BTC

`
}

func (*statusCmd) SetFlags(_ *flag.FlagSet) {}

func (p *statusCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	pipeline, closer, err := NewPipeline(cfg, ledger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if closer != nil {
		defer closer()
	}

	data, err := pipeline.Process(ctx, tick)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.StatusMarkdown(data))
	return subcommands.ExitSuccess
}
