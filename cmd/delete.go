package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove an expense from the ledger" }
func (*deleteCmd) Usage() string {
	return `tlc delete -id <record>

  Removes the matching record locally and from the remote store.
`
}

func (p *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.id, "id", "", "Id of the record to delete (see tlc list -id).")
}

func (p *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	store := openStore()
	rec, found, err := store.Remove(p.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if !found {
		fmt.Fprintf(os.Stderr, "Error: no record with id %q\n", p.id)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s (%s)\n", rec.Description, rec.Amount)

	pushAndResync(store, rec, tripledger.OpDelete)
	return subcommands.ExitSuccess
}
