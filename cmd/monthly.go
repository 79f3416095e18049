package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type monthlyCmd struct {
	category string
	year     int
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display monthly expenses for one category" }
func (*monthlyCmd) Usage() string {
	return `pfm monthly -c <category> [-y <year>]

  Sums the expenses matching the category per calendar month, months in
  ascending order.
`
}

func (p *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.category, "c", "", "Category substring to match")
	f.IntVar(&p.year, "y", 0, "Restrict to this calendar year")
}

func (p *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	ledger, err := LoadLedger(ctx, NewStore())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(rendererOptions().Months(pfm.ExpensesByMonthForCategory(ledger, p.category, p.year)))
	return subcommands.ExitSuccess
}
