package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type totalsCmd struct {
	filter filterFlags
}

func (*totalsCmd) Name() string     { return "totals" }
func (*totalsCmd) Synopsis() string { return "display income, expenses and balance" }
func (*totalsCmd) Usage() string {
	return `pfm totals [-y <year>] [-m <month>] [-day <day>] [-s <start>] [-e <end>] [-c <category>]

  Sums income and expenses over the filtered transactions and displays
  income, expenses, the resulting balance and the transaction count.
`
}

func (p *totalsCmd) SetFlags(f *flag.FlagSet) { p.filter.setFlags(f) }

func (p *totalsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(rendererOptions().Totals(pfm.NewTotals(ledger, filter)))
	return subcommands.ExitSuccess
}
