package pfm

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows the record set before an aggregation. Zero fields leave
// the corresponding dimension unfiltered; all set fields apply together as
// independent, commutative predicate narrowings.
type Filter struct {
	Year     int
	Month    time.Month
	Day      int
	Start    Date
	End      Date
	Category string
}

// predicates compiles the filter into the ledger predicate list.
func (f Filter) predicates() []func(Transaction) bool {
	var preds []func(Transaction) bool
	if f.Year != 0 {
		preds = append(preds, ByYear(f.Year))
	}
	if f.Month != 0 {
		preds = append(preds, ByMonth(f.Month))
	}
	if f.Day != 0 {
		preds = append(preds, ByDay(f.Day))
	}
	if !f.Start.IsZero() || !f.End.IsZero() {
		preds = append(preds, ByRange(Range{From: f.Start, To: f.End}))
	}
	if f.Category != "" {
		preds = append(preds, ByCategory(f.Category))
	}
	return preds
}

// Totals holds summed amounts over a filtered record set.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
	Count    int
}

// CategoryTotal is the summed expense amount for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthTotal is the summed expense amount for one calendar month.
type MonthTotal struct {
	Month time.Month
	Total decimal.Decimal
}

// NewTotals sums income and expense amounts over the filtered set and
// returns income, expenses, their balance and the transaction count. An
// empty filtered set yields all-zero sums and count 0, never an error.
func NewTotals(ledger *Ledger, filter Filter) Totals {
	t := Totals{Income: decimal.Zero, Expenses: decimal.Zero}
	for _, tx := range ledger.Transactions(filter.predicates()...) {
		switch tx.Kind {
		case Income:
			t.Income = t.Income.Add(tx.Amount)
		case Expense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
		t.Count++
	}
	t.Balance = t.Income.Sub(t.Expenses)
	return t
}

// List returns the filtered set sorted by date descending (ties keep the
// original order) and truncated to limit when limit is strictly positive.
func List(ledger *Ledger, filter Filter, limit int) []Transaction {
	var txs []Transaction
	for _, tx := range ledger.Transactions(filter.predicates()...) {
		txs = append(txs, tx)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[j].Date.Before(txs[i].Date)
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

// ExpensesByCategory restricts the filtered set to expenses, groups them
// by category and sums each group, sorted by sum descending. Groups with
// equal sums are ordered by category name for a deterministic result.
func ExpensesByCategory(ledger *Ledger, filter Filter) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	preds := append(filter.predicates(), ByKind(Expense))
	for _, tx := range ledger.Transactions(preds...) {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}

	groups := make([]CategoryTotal, 0, len(sums))
	for category, total := range sums {
		groups = append(groups, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].Total.Equal(groups[j].Total) {
			return groups[i].Total.GreaterThan(groups[j].Total)
		}
		return groups[i].Category < groups[j].Category
	})
	return groups
}

// ExpensesByMonthForCategory restricts the set to expenses whose category
// contains the given query (case-insensitive), optionally within one year,
// then groups by calendar month and sums each group, months ascending.
// An empty category query yields an empty result, not an error.
func ExpensesByMonthForCategory(ledger *Ledger, category string, year int) []MonthTotal {
	if strings.TrimSpace(category) == "" {
		return nil
	}
	preds := []func(Transaction) bool{ByKind(Expense), ByCategory(category)}
	if year != 0 {
		preds = append(preds, ByYear(year))
	}

	sums := make(map[time.Month]decimal.Decimal)
	for _, tx := range ledger.Transactions(preds...) {
		sums[tx.Date.Month()] = sums[tx.Date.Month()].Add(tx.Amount)
	}

	groups := make([]MonthTotal, 0, len(sums))
	for month, total := range sums {
		groups = append(groups, MonthTotal{Month: month, Total: total})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Month < groups[j].Month })
	return groups
}
