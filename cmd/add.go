package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// recordFlags carries the record field flags shared by add and edit.
type recordFlags struct {
	date        string
	item        string
	amount      string
	currency    string
	payer       string
	split       string
	manualOwner string
	manualShare string
	note        string
}

func (p *recordFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", tripledger.Today().String(), "Expense date (YYYY/MM/DD).")
	f.StringVar(&p.item, "i", "", "What the expense was for.")
	f.StringVar(&p.amount, "a", "", "Amount paid, in the selected currency.")
	f.StringVar(&p.currency, "c", string(tripledger.JPY), "Currency (JPY or TWD).")
	f.StringVar(&p.payer, "p", string(tripledger.Anbao), "Who paid (Anbao or Tingbao).")
	f.StringVar(&p.split, "split", string(tripledger.Average), "Split policy (average or manual).")
	f.StringVar(&p.manualOwner, "owner", string(tripledger.Anbao), "Whose share the manual amount is.")
	f.StringVar(&p.manualShare, "share", "0", "Manual share amount.")
	f.StringVar(&p.note, "note", "", "Optional note.")
}

// fields validates the flag values into RecordFields. Enumerated flags fail
// here so the user gets one clear message instead of a store-level error.
func (p *recordFlags) fields() (tripledger.RecordFields, error) {
	var fields tripledger.RecordFields
	var err error

	fields.Date = p.date
	fields.Description = p.item
	fields.Notes = p.note
	if fields.Amount, err = decimal.NewFromString(p.amount); err != nil {
		return fields, fmt.Errorf("invalid amount %q: %w", p.amount, err)
	}
	if fields.Currency, err = tripledger.ParseCurrency(p.currency); err != nil {
		return fields, err
	}
	if fields.Payer, err = tripledger.ParseParticipant(p.payer); err != nil {
		return fields, err
	}
	if fields.Split, err = tripledger.ParseSplitPolicy(p.split); err != nil {
		return fields, err
	}
	if fields.Split == tripledger.Manual {
		if fields.ManualOwner, err = tripledger.ParseParticipant(p.manualOwner); err != nil {
			return fields, err
		}
		if fields.ManualShare, err = decimal.NewFromString(p.manualShare); err != nil {
			return fields, fmt.Errorf("invalid share %q: %w", p.manualShare, err)
		}
	}
	return fields, nil
}

type addCmd struct {
	recordFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new shared expense" }
func (*addCmd) Usage() string {
	return `tlc add -i <item> -a <amount> [-c JPY|TWD] [-p Anbao|Tingbao] [-d <date>] [-split average|manual -owner <who> -share <amount>] [-note <text>]

  Records one expense, persists it locally, then pushes it to the remote
  store when sync is configured.

Usage Examples:
# A 3000 yen dinner paid by Anbao, split down the middle.
$ tlc add -i "ramen" -a 3000

# A 1000 TWD purchase where Anbao's share is exactly 200.
$ tlc add -i "boba" -a 1000 -c TWD -p Tingbao -split manual -owner Anbao -share 200
`
}

func (p *addCmd) SetFlags(f *flag.FlagSet) { p.setFlags(f) }

func (p *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fields, err := p.fields()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store := openStore()
	rec, err := store.Add(fields)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	shareA, shareB := tripledger.PreviewShares(rec)
	fmt.Printf("Added %s: %s paid %s (%s %s / %s %s)\n",
		rec.Description, rec.Payer.Label(), rec.Amount,
		tripledger.Anbao.Label(), tripledger.M(shareA, rec.Amount.Currency()),
		tripledger.Tingbao.Label(), tripledger.M(shareB, rec.Amount.Currency()))

	pushAndResync(store, rec, tripledger.OpAdd)
	return subcommands.ExitSuccess
}
