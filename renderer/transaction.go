package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/pfm"
)

// Transactions renders a list of transactions as a markdown table, one row
// per record in the given order.
func (o Options) Transactions(txs []pfm.Transaction) string {
	if len(txs) == 0 {
		return "No transactions.\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Date | Description | Kind | Amount | Category | ID |")
	fmt.Fprintln(&b, "|------|-------------|------|-------:|----------|----|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			tx.Date, escape(tx.Description), tx.Kind, o.money(tx.Amount), escape(tx.Category), tx.ID)
	}
	return b.String()
}

// Transaction renders a single transaction to a one-line string.
func (o Options) Transaction(tx pfm.Transaction) string {
	return fmt.Sprintf("%s %s of %s (%s) on %s [%s]",
		tx.Kind, escape(tx.Description), o.money(tx.Amount), escape(tx.Category), tx.Date, tx.ID)
}

// Totals renders a totals report as a markdown summary.
func (o Options) Totals(t pfm.Totals) string {
	var b strings.Builder
	fmt.Fprintln(&b, "# Totals")
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "- Income: %s\n", o.money(t.Income))
	fmt.Fprintf(&b, "- Expenses: %s\n", o.money(t.Expenses))
	fmt.Fprintf(&b, "- Balance: %s\n", o.money(t.Balance))
	fmt.Fprintf(&b, "- Transactions: %d\n", t.Count)
	return b.String()
}

// Categories renders expense-by-category groups as a markdown table.
func (o Options) Categories(groups []pfm.CategoryTotal) string {
	if len(groups) == 0 {
		return "No expenses.\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Category | Total |")
	fmt.Fprintln(&b, "|----------|------:|")
	for _, g := range groups {
		fmt.Fprintf(&b, "| %s | %s |\n", escape(g.Category), o.money(g.Total))
	}
	return b.String()
}

// Months renders expense-by-month groups as a markdown table.
func (o Options) Months(groups []pfm.MonthTotal) string {
	if len(groups) == 0 {
		return "No expenses.\n"
	}
	var b strings.Builder
	fmt.Fprintln(&b, "| Month | Total |")
	fmt.Fprintln(&b, "|-------|------:|")
	for _, g := range groups {
		fmt.Fprintf(&b, "| %s | %s |\n", g.Month, o.money(g.Total))
	}
	return b.String()
}

// escape neutralizes the table delimiter in free-form text cells.
func escape(s string) string { return strings.ReplaceAll(s, "|", "\\|") }
