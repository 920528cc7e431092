// Command tlc manages a two-person shared trip ledger.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Miyu0603/tripledger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs (and exits) only when invoked by the shell's
	// completion machinery.
	completion().Complete("tlc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"data-dir": predict.Dirs("*"),
			"sync-url": predict.Nothing,
			"config":   predict.Files("*.yaml"),
		},
	}
}
