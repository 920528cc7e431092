package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "pull the remote ledger and replace the local cache" }
func (*syncCmd) Usage() string {
	return `tlc sync

  Fetches the full expense dataset from the remote store and replaces the
  local cache with it. The remote snapshot wins wholesale; there is no
  field-level merge. On any failure the local cache is left untouched.
`
}

func (*syncCmd) SetFlags(f *flag.FlagSet) {}

func (p *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rc := reconciler()
	if !rc.Enabled() {
		fmt.Fprintln(os.Stderr, "Error: no remote store configured (set -sync-url or TRIPLEDGER_SYNC_URL)")
		return subcommands.ExitUsageError
	}

	store := openStore()
	if err := rc.Resync(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: sync failed, local cache untouched: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Synced %d expenses from the remote store\n", store.Ledger().Len())
	return subcommands.ExitSuccess
}
