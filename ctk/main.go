// Command ctk is the CryptoTracker CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/XMabbX/CryptoTracker/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
)

func main() {
	godotenv.Load() // Load .env if present, for GEMINI_API_KEY and friends.

	// Shell completion of subcommand names; a no-op outside of a
	// completion request.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"import":       {Flags: map[string]complete.Predictor{"dir": nil}},
			"transactions": {},
			"remove-coin":  {Flags: map[string]complete.Predictor{"force": nil}},
			"summary":      {},
			"status":       {},
			"assist":       {},
		},
		Flags: map[string]complete.Predictor{"config": nil},
	}
	completion.Complete("ctk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
