package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/pfm"
	"github.com/shopspring/decimal"
)

func TestTotals(t *testing.T) {
	o := Options{Currency: "USD"}
	got := o.Totals(pfm.Totals{
		Income:   decimal.NewFromInt(1000),
		Expenses: decimal.NewFromInt(300),
		Balance:  decimal.NewFromInt(700),
		Count:    2,
	})
	for _, want := range []string{"$1,000.00", "$300.00", "$700.00", "Transactions: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("Totals() missing %q in:\n%s", want, got)
		}
	}
}

func TestTotalsUnknownCurrency(t *testing.T) {
	// A currency code go-money does not know must degrade to plain
	// fixed-point output, never crash the rendering path.
	o := Options{Currency: "XYZ"}
	got := o.Totals(pfm.Totals{
		Income:   decimal.NewFromInt(1000),
		Expenses: decimal.NewFromInt(300),
		Balance:  decimal.NewFromInt(700),
		Count:    2,
	})
	for _, want := range []string{"1000.00 XYZ", "300.00 XYZ", "700.00 XYZ"} {
		if !strings.Contains(got, want) {
			t.Errorf("Totals() missing %q in:\n%s", want, got)
		}
	}
}

func TestTransactions(t *testing.T) {
	o := Options{Currency: "EUR"}

	t.Run("empty", func(t *testing.T) {
		if got := o.Transactions(nil); !strings.Contains(got, "No transactions") {
			t.Errorf("Transactions(nil) = %q", got)
		}
	})

	t.Run("table", func(t *testing.T) {
		txs := []pfm.Transaction{{
			ID:          "a1",
			Description: "Coffee | beans",
			Kind:        pfm.Expense,
			Amount:      decimal.NewFromFloat(12.50),
			Category:    "food",
			Date:        pfm.MustParseDate("2025-01-10"),
		}}
		got := o.Transactions(txs)
		if !strings.Contains(got, "2025-01-10") || !strings.Contains(got, "a1") {
			t.Errorf("Transactions() missing fields:\n%s", got)
		}
		if !strings.Contains(got, `Coffee \| beans`) {
			t.Errorf("Transactions() did not escape the cell delimiter:\n%s", got)
		}
	})
}
