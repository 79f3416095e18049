package pfm

import (
	"iter"
	"strings"
	"time"
)

// CategoryAll is the sentinel category filter value that disables category
// filtering (matched case-insensitively).
const CategoryAll = "all"

// Ledger represents the canonical in-memory record set backing all queries.
//
// Transactions keep the order of the backing blob; queries that need a
// different order sort a copy.
type Ledger struct {
	transactions []Transaction

	dropped      int  // rows excluded during normalization
	needsRewrite bool // true when identifiers were backfilled at load
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Dropped returns the number of malformed rows silently excluded during
// normalization. It is a diagnostic, never an error.
func (l *Ledger) Dropped() int { return l.dropped }

// NeedsRewrite reports whether normalization backfilled identifiers, so
// the caller should persist once to stamp them back to storage.
func (l *Ledger) NeedsRewrite() bool { return l.needsRewrite }

// Append appends transactions to this ledger, keeping their order.
func (l *Ledger) Append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
}

// Get returns the transaction with the given id, or false if absent.
func (l *Ledger) Get(id string) (Transaction, bool) {
	i := l.indexOf(id)
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

func (l *Ledger) indexOf(id string) int {
	for i, tx := range l.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

// Transactions returns an iterator that yields each transaction accepted
// by every filter, in the ledger's original order. Filters are independent
// predicate narrowings: their order does not affect the result.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// clone returns a shallow copy of the ledger with its own transaction
// slice, so a failed persistence never leaves a partially mutated cache.
func (l *Ledger) clone() *Ledger {
	c := &Ledger{
		transactions: make([]Transaction, len(l.transactions)),
		dropped:      l.dropped,
	}
	copy(c.transactions, l.transactions)
	return c
}

// AcceptAll is a predicate that accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByYear returns a predicate matching the transaction date's year.
func ByYear(year int) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Date.Year() == year }
}

// ByMonth returns a predicate matching the transaction date's month.
func ByMonth(month time.Month) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Date.Month() == month }
}

// ByDay returns a predicate matching the transaction date's day of month.
func ByDay(day int) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Date.Day() == day }
}

// ByRange returns a predicate matching dates within r, bounds included.
func ByRange(r Range) func(Transaction) bool {
	return func(tx Transaction) bool { return r.Contains(tx.Date) }
}

// ByKind returns a predicate matching the transaction kind.
func ByKind(kind Kind) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Kind == kind }
}

// ByCategory returns a predicate matching the category by case-insensitive
// substring. The sentinel value "all" (any case) disables the filter, as
// does an empty query.
func ByCategory(query string) func(Transaction) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || q == CategoryAll {
		return AcceptAll
	}
	return func(tx Transaction) bool {
		return strings.Contains(strings.ToLower(tx.Category), q)
	}
}
