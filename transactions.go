package pfm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is a typed string for the two transaction kinds.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

// ParseKind normalizes a free-text kind into the two-element enum.
// Historical files spell expenses "expensive"; that spelling is accepted
// on read and normalized to Expense.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income":
		return Income, nil
	case "expense", "expensive":
		return Expense, nil
	default:
		return "", fmt.Errorf("kind must be %q or %q", Income, Expense)
	}
}

// Transaction is one row of the ledger.
//
// Every Transaction held in a Ledger has a non-empty unique ID, a Kind in
// the two-element enum, a strictly positive Amount and a valid Date.
type Transaction struct {
	ID          string
	Description string
	Kind        Kind
	Amount      decimal.Decimal
	Category    string
	Date        Date

	// Extra holds columns encountered on read that are not part of the
	// canonical six, so they survive re-serialization.
	Extra map[string]string
}

// Equal reports whether two transactions carry the same canonical fields.
// Extra columns do not take part in the comparison.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Description == o.Description &&
		t.Kind == o.Kind &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Date == o.Date
}

// NewID returns a fresh opaque unique identifier for a transaction.
func NewID() string { return uuid.NewString() }

// TransactionFields carries the caller-supplied business fields of a
// transaction. All fields are optional strings; NewTransaction and
// Store.Update decide which ones are required.
type TransactionFields struct {
	Description string
	Kind        string
	Amount      string
	Category    string
	Date        string // optional, defaults to today on creation
}

// IsZero reports whether no field at all was supplied.
func (f TransactionFields) IsZero() bool {
	return f.Description == "" && f.Kind == "" && f.Amount == "" &&
		f.Category == "" && f.Date == ""
}

// NewTransaction validates the supplied fields together and returns a
// Transaction with a freshly generated id. The date defaults to today when
// omitted. It returns a *ValidationError on the first rule violation.
func NewTransaction(f TransactionFields) (Transaction, error) {
	var tx Transaction

	if strings.TrimSpace(f.Description) == "" {
		return tx, invalidf("description is required")
	}
	if strings.TrimSpace(f.Category) == "" {
		return tx, invalidf("category is required")
	}
	if strings.TrimSpace(f.Kind) == "" {
		return tx, invalidf("kind is required")
	}
	kind, err := ParseKind(f.Kind)
	if err != nil {
		return tx, invalidf("%v", err)
	}
	amount, err := ParseAmount(f.Amount)
	if err != nil {
		return tx, invalidf("amount must be a number")
	}
	if !amount.IsPositive() {
		return tx, invalidf("amount must be greater than zero")
	}
	day := Today()
	if f.Date != "" {
		day, err = ParseDate(f.Date)
		if err != nil {
			return tx, invalidf("date must be a valid date string")
		}
	}

	return Transaction{
		ID:          NewID(),
		Description: strings.TrimSpace(f.Description),
		Kind:        kind,
		Amount:      amount,
		Category:    strings.TrimSpace(f.Category),
		Date:        day,
	}, nil
}

// apply validates only the fields supplied in f and applies them to a copy
// of t, leaving the others untouched. Used by Store.Update.
func (t Transaction) apply(f TransactionFields) (Transaction, error) {
	if f.Description != "" {
		if strings.TrimSpace(f.Description) == "" {
			return t, invalidf("description is required")
		}
		t.Description = strings.TrimSpace(f.Description)
	}
	if f.Category != "" {
		if strings.TrimSpace(f.Category) == "" {
			return t, invalidf("category is required")
		}
		t.Category = strings.TrimSpace(f.Category)
	}
	if f.Kind != "" {
		kind, err := ParseKind(f.Kind)
		if err != nil {
			return t, invalidf("%v", err)
		}
		t.Kind = kind
	}
	if f.Amount != "" {
		amount, err := ParseAmount(f.Amount)
		if err != nil {
			return t, invalidf("amount must be a number")
		}
		if !amount.IsPositive() {
			return t, invalidf("amount must be greater than zero")
		}
		t.Amount = amount
	}
	if f.Date != "" {
		day, err := ParseDate(f.Date)
		if err != nil {
			return t, invalidf("date must be a valid date string")
		}
		t.Date = day
	}
	return t, nil
}
