package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

type settleCmd struct{}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "show who owes whom, per currency" }
func (*settleCmd) Usage() string {
	return `tlc settle

  Nets every expense into a single balance per currency: each payer is
  credited with the other person's share of the bills they fronted, and the
  difference says who pays whom. JPY and TWD settle independently.
`
}

func (*settleCmd) SetFlags(f *flag.FlagSet) {}

func (p *settleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settlement := tripledger.Settle(openStore().Ledger())

	var b strings.Builder
	fmt.Fprintf(&b, "# Settlement\n\n")
	for _, currency := range tripledger.Currencies {
		balance := settlement[currency]
		if balance.Settled() {
			fmt.Fprintf(&b, "- **%s**: settled 🎉\n", currency)
			continue
		}
		fmt.Fprintf(&b, "- **%s**: %s pays %s to %s\n",
			currency, balance.Owing.Label(), balance.Amount, balance.Owing.Other().Label())
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
