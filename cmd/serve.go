package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/Miyu0603/tripledger/sheetd"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run a local remote-store endpoint" }
func (*serveCmd) Usage() string {
	return `tlc serve [-addr <host:port>]

  Runs an in-memory stand-in for the spreadsheet webhook, speaking the same
  wire protocol. Point -sync-url (or TRIPLEDGER_SYNC_URL) at it to run the
  full sync stack without a spreadsheet account. The dataset starts empty
  and lives only as long as the process.
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", "localhost:8817", "Address to listen on.")
}

func (p *serveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	srv := sheetd.NewServer()
	fmt.Printf("Serving the remote-store protocol on http://%s\n", p.addr)
	if err := http.ListenAndServe(p.addr, srv.Handler()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
