package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type txCmd struct {
	filter filterFlags
	limit  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `pfm tx [-y <year>] [-m <month>] [-day <day>] [-s <start>] [-e <end>] [-c <category>] [-n <limit>]

  Lists transactions, most recent first, with options for filtering and
  limiting the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	p.filter.setFlags(f)
	f.IntVar(&p.limit, "n", 0, "Show only the first N transactions (0 shows all)")
}

func (p *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := p.filter.parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := LoadLedger(ctx, NewStore())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(rendererOptions().Transactions(pfm.List(ledger, filter, p.limit)))
	return subcommands.ExitSuccess
}
