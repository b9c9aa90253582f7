package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/XMabbX/CryptoTracker/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary with per-coin analytics" }
func (*summaryCmd) Usage() string {
	return `ctk summary

  Runs the analytics over every held coin and prints one row per coin:
  quantities, current value, unrealized and realized gains in the
  reporting currency. Fiat-equivalent assets are skipped.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (p *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	// Report partial failures but still render what succeeded.
	if err := pipeline.ProcessAll(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: some coins failed:", err)
	}

	printMarkdown(renderer.SummaryMarkdown(pipeline.Frozen(), pipeline.Currency()))
	return subcommands.ExitSuccess
}
