package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

type totalsCmd struct{}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "show total spending per currency" }
func (*totalsCmd) Usage() string {
	return `tlc totals

  Sums all recorded expenses per currency. Totals never cross currencies;
  there is no exchange-rate conversion.
`
}

func (*totalsCmd) SetFlags(f *flag.FlagSet) {}

func (p *totalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	totals := openStore().Totals()

	var b strings.Builder
	fmt.Fprintf(&b, "# Totals\n\n")
	for _, currency := range tripledger.Currencies {
		fmt.Fprintf(&b, "- **%s**: %s\n", currency, totals[currency])
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
