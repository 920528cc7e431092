package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

type editCmd struct {
	recordFlags
	id string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "rewrite an existing expense" }
func (*editCmd) Usage() string {
	return `tlc edit -id <record> -i <item> -a <amount> [record flags]

  Replaces every field of the matching record. The record id and its place
  in the list are preserved; all other fields take the flag values, so the
  full set of record flags must be given again.
`
}

func (p *editCmd) SetFlags(f *flag.FlagSet) {
	p.setFlags(f)
	f.StringVar(&p.id, "id", "", "Id of the record to edit (see tlc list -id).")
}

func (p *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}
	fields, err := p.fields()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	store := openStore()
	rec, found, err := store.Edit(p.id, fields)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no record with id %q\n", p.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s (%s)\n", rec.Description, rec.Amount)

	pushAndResync(store, rec, tripledger.OpEdit)
	return subcommands.ExitSuccess
}
