package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type addCmd struct {
	description string
	kind        string
	amount      string
	category    string
	date        string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new transaction in the ledger" }
func (*addCmd) Usage() string {
	return `pfm add -d <description> -k <kind> -a <amount> -c <category> [-date <date>]

  Records a single transaction. Kind is "income" or "expense", the amount
  is strictly positive and the date defaults to today.

Usage Examples:
# Record today's groceries.
$ pfm add -d "supermarket" -k expense -a 42.50 -c food

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.description, "d", "", "What the transaction was for")
	f.StringVar(&c.kind, "k", "", `Transaction kind: "income" or "expense"`)
	f.StringVar(&c.amount, "a", "", "Strictly positive amount, e.g. 42.50")
	f.StringVar(&c.category, "c", "", "Free-form category label")
	f.StringVar(&c.date, "date", "", "Transaction date (defaults to today)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.description == "" || c.kind == "" || c.amount == "" || c.category == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	store := NewStore()
	if _, err := LoadLedger(ctx, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, count, err := store.Add(ctx, pfm.TransactionFields{
		Description: c.description,
		Kind:        c.kind,
		Amount:      c.amount,
		Category:    c.category,
		Date:        c.date,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %s\nThe ledger now holds %d transactions.\n", rendererOptions().Transaction(tx), count)
	return subcommands.ExitSuccess
}
