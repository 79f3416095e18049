package pfm

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a textual amount into an exact decimal value.
//
// Legacy rows carry amounts as formatted strings like "$1.000.000" or
// "1 250,50": currency symbols and spaces are stripped, and dots are
// treated as thousands separators when the value has no decimal comma.
// A decimal comma is normalized to a dot before parsing.
func ParseAmount(str string) (decimal.Decimal, error) {
	s := strings.TrimSpace(str)
	for _, sym := range []string{"$", "€", "£"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if strings.Contains(s, ",") {
		// "1.250,50": dots are thousands separators, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if strings.Count(s, ".") > 1 || thousandsDotted(s) {
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", str, err)
	}
	// The ledger holds money to the cent. Sub-cent precision is rounded
	// away on parse so every ingest path agrees with the persisted form.
	return d.Round(2), nil
}

// thousandsDotted reports whether a single dot in s is a thousands
// separator, i.e. it is followed by exactly three digits ("1.000").
// "10.50" keeps its dot as a decimal mark.
func thousandsDotted(s string) bool {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return false
	}
	return len(s)-i-1 == 3
}
