// Package cmd implements the CLI application to manage a shared trip ledger.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Miyu0603/tripledger"
	"github.com/google/subcommands"
)

// Commands is the full list of subcommands. A main package registers each of
// them on its commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&deleteCmd{},
	&listCmd{},
	&totalsCmd{},
	&settleCmd{},
	&syncCmd{},
	&checklistCmd{typ: tripledger.PrepList},
	&checklistCmd{typ: tripledger.ShoppingList},
	&checklistCmd{typ: tripledger.LuggageList},
	&topicCmd{},
	&serveCmd{},
}

// openStore loads the expense ledger from the configured data directory.
func openStore() *tripledger.LedgerStore {
	return tripledger.OpenLedgerStore(appConfig().DataDir)
}

// reconciler returns the sync reconciler for the configured remote store.
// With no URL configured it is disabled and every sync step is skipped.
func reconciler() *tripledger.Reconciler {
	return tripledger.NewReconciler(appConfig().SyncURL)
}

// pushAndResync runs the post-mutation sync sequence: fire-and-forget push,
// wait for the write to land, then pull the authoritative snapshot back.
// The local mutation is already persisted; nothing here can fail the
// command, a resync failure only leaves the local cache as the truth.
func pushAndResync(store *tripledger.LedgerStore, rec tripledger.ExpenseRecord, op tripledger.SyncOp) {
	rc := reconciler()
	if !rc.Enabled() {
		return
	}
	rc.Push(rec, op)
	time.Sleep(tripledger.ResyncDelay)
	if err := rc.Resync(store); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: resync failed, keeping local state: %v\n", err)
	}
}
