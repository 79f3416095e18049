package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type editCmd struct {
	id          string
	description string
	kind        string
	amount      string
	category    string
	date        string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "update fields of an existing transaction" }
func (*editCmd) Usage() string {
	return `pfm edit -id <id> [-d <description>] [-k <kind>] [-a <amount>] [-c <category>] [-date <date>]

  Updates the transaction with the given id. Only the supplied flags are
  changed; at least one of them is required.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id, as shown by pfm tx")
	f.StringVar(&c.description, "d", "", "New description")
	f.StringVar(&c.kind, "k", "", `New kind: "income" or "expense"`)
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.category, "c", "", "New category")
	f.StringVar(&c.date, "date", "", "New date")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	store := NewStore()
	if _, err := LoadLedger(ctx, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	tx, err := store.Update(ctx, c.id, pfm.TransactionFields{
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

	fmt.Printf("Updated %s\n", rendererOptions().Transaction(tx))
	return subcommands.ExitSuccess
}
