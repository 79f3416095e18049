package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type categoriesCmd struct {
	filter filterFlags
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "display expenses grouped by category" }
func (*categoriesCmd) Usage() string {
	return `pfm categories [-y <year>] [-m <month>] [-s <start>] [-e <end>]

  Groups the filtered expenses by category and displays each group's
  total, largest first.
`
}

func (p *categoriesCmd) SetFlags(f *flag.FlagSet) { p.filter.setFlags(f) }

func (p *categoriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	printMarkdown(rendererOptions().Categories(pfm.ExpensesByCategory(ledger, filter)))
	return subcommands.ExitSuccess
}
