// Package renderer turns ledger records and reports into markdown strings
// suitable for terminal rendering.
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Options holds the rendering configuration shared by all reports.
type Options struct {
	// Currency is the ISO code used to format amounts (e.g. "USD", "EUR").
	Currency string
}

// formats an exact decimal as a localized money string, e.g. "$1,000.00".
func (o Options) money(v decimal.Decimal) string {
	code := o.Currency
	if code == "" {
		code = money.USD
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		// Unknown code: plain fixed-point with the code as suffix.
		return v.StringFixed(2) + " " + code
	}
	return money.New(v.Shift(int32(cur.Fraction)).Round(0).IntPart(), code).Display()
}
