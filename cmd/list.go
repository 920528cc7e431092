package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

type listCmd struct {
	currency string
	payer    string
	head     int
	showIDs  bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list recorded expenses, newest first" }
func (*listCmd) Usage() string {
	return `tlc list [-c JPY|TWD] [-p Anbao|Tingbao] [-head <n>] [-id]

  Lists expenses from the local cache, newest first, with each person's
  share. Use -id to print record ids for edit and delete.
`
}

func (p *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.currency, "c", "", "Show only this currency (JPY or TWD).")
	f.StringVar(&p.payer, "p", "", "Show only expenses fronted by this payer.")
	f.IntVar(&p.head, "head", 0, "Show only the first N expenses.")
	f.BoolVar(&p.showIDs, "id", false, "Include record ids in the output.")
}

func (p *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var filters []func(tripledger.ExpenseRecord) bool
	if p.currency != "" {
		currency, err := tripledger.ParseCurrency(p.currency)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, tripledger.ByCurrency(currency))
	}
	if p.payer != "" {
		payer, err := tripledger.ParseParticipant(p.payer)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, tripledger.ByPayer(payer))
	}
	// Both filters given means their intersection, not their union.
	if len(filters) == 2 {
		a, b := filters[0], filters[1]
		filters = []func(tripledger.ExpenseRecord) bool{
			func(r tripledger.ExpenseRecord) bool { return a(r) && b(r) },
		}
	}

	ledger := openStore().Ledger()
	var b strings.Builder
	fmt.Fprintf(&b, "# Expenses\n\n")
	header, rule := "| Date | Item | Payer | Amount | %s | %s |", "|---|---|---|---|---|---|"
	if p.showIDs {
		header, rule = "| Date | Item | Payer | Amount | %s | %s | Id |", "|---|---|---|---|---|---|---|"
	}
	fmt.Fprintf(&b, header+"\n", tripledger.Anbao.Label(), tripledger.Tingbao.Label())
	fmt.Fprintln(&b, rule)

	n := 0
	for _, rec := range ledger.Records(filters...) {
		if p.head > 0 && n >= p.head {
			break
		}
		n++
		shareA, shareB := tripledger.PreviewShares(rec)
		currency := rec.Amount.Currency()
		item := rec.Description
		if rec.Notes != "" {
			item += " (" + rec.Notes + ")"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |",
			rec.Date, item, rec.Payer.Label(), rec.Amount,
			tripledger.M(shareA, currency), tripledger.M(shareB, currency))
		if p.showIDs {
			fmt.Fprintf(&b, " %s |", rec.ID)
		}
		fmt.Fprintln(&b)
	}
	if n == 0 {
		b.Reset()
		b.WriteString("No expenses recorded yet.\n")
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
