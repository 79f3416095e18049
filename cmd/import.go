package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pfm"
	"github.com/google/subcommands"
)

type importCmd struct {
	path string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import transactions from a JSON export" }
func (*importCmd) Usage() string {
	return `pfm import [-path <jsonpath>] <file.json>

  Imports transactions from a JSON bank export. The record array is
  located with a JSONPath expression and each record's fields are mapped
  by name (description, kind, amount, category, date, plus the usual
  aliases). Records are appended in batches; any invalid record aborts
  its whole batch.

Usage Examples:
# Import the records under the "transactions" key.
$ pfm import -path "$.transactions" export.json

`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", "$", "JSONPath expression locating the record array")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	fields, err := pfm.ImportJSON(file, c.path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	if len(fields) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no records found to import.")
		return subcommands.ExitSuccess
	}

	store := NewStore()
	if _, err := LoadLedger(ctx, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	// The store caps batch sizes, so the import feeds it chunk by chunk.
	imported := 0
	for len(fields) > 0 {
		chunk := fields
		if len(chunk) > pfm.MaxBatch {
			chunk = chunk[:pfm.MaxBatch]
		}
		fields = fields[len(chunk):]

		if _, _, err := store.AddBatch(ctx, chunk); err != nil {
			fmt.Fprintf(os.Stderr, "Error after importing %d transactions: %v\n", imported, err)
			return subcommands.ExitFailure
		}
		imported += len(chunk)
	}

	fmt.Printf("Successfully imported %d transactions.\n", imported)
	return subcommands.ExitSuccess
}
