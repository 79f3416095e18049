package pfm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const testKey = "ledger.csv"

// newTestStore seeds a backend with the given table and returns a store on it.
func newTestStore(t *testing.T, table string) (*Store, *MemBackend) {
	t.Helper()
	backend := NewMemBackend()
	if err := backend.Put(context.Background(), testKey, []byte(table)); err != nil {
		t.Fatalf("seeding backend: %v", err)
	}
	return NewStore(backend, testKey), backend
}

const seedTable = "id;description;kind;amount;category;date\n" +
	"a1;Salary;income;1000.00;work;2025-01-05\n" +
	"a2;Groceries;expense;300.00;food;2025-01-10\n"

func TestStore_LoadCachesAndStamps(t *testing.T) {
	// A table without identifiers triggers one stamping pass at load.
	table := "description;kind;amount;category;date\nRent;expense;800;home;2025-02-01\n"
	store, backend := newTestStore(t, table)
	ctx := context.Background()

	ledger, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ledger.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ledger.Len())
	}

	// The stamped blob now carries the generated identifier.
	data, err := backend.Get(ctx, testKey)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	id := ledger.transactions[0].ID
	if id == "" || !strings.Contains(string(data), id) {
		t.Errorf("stamped blob does not carry generated id %q:\n%s", id, data)
	}

	// Subsequent loads return the cached set, no backend round-trip.
	backend.FailPut = errors.New("backend down")
	again, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() second call error = %v", err)
	}
	if again != ledger {
		t.Errorf("Load() did not return the cached snapshot")
	}
}

func TestStore_LoadErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing blob", func(t *testing.T) {
		store := NewStore(NewMemBackend(), testKey)
		_, err := store.Load(ctx)
		var backendErr *BackendError
		if !errors.As(err, &backendErr) {
			t.Fatalf("Load() error = %v, want *BackendError", err)
		}
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Load() error = %v, want to wrap ErrKeyNotFound", err)
		}
	})

	t.Run("missing columns", func(t *testing.T) {
		store, _ := newTestStore(t, "foo;bar\n1;2\n")
		_, err := store.Load(ctx)
		var schema *SchemaError
		if !errors.As(err, &schema) {
			t.Fatalf("Load() error = %v, want *SchemaError", err)
		}
	})
}

func TestStore_Add(t *testing.T) {
	store, _ := newTestStore(t, seedTable)
	ctx := context.Background()

	tx, count, err := store.Add(ctx, TransactionFields{
		Description: " Dinner ",
		Kind:        "Expense",
		Amount:      "45,90",
		Category:    "food",
		Date:        "11/01/2025",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	if tx.ID == "" {
		t.Errorf("Add() did not generate an id")
	}
	if tx.Description != "Dinner" {
		t.Errorf("Description = %q, want trimmed %q", tx.Description, "Dinner")
	}
	if tx.Amount.String() != "45.9" {
		t.Errorf("Amount = %s, want 45.9", tx.Amount)
	}
	if tx.Date.String() != "2025-01-11" {
		t.Errorf("Date = %s, want 2025-01-11", tx.Date)
	}

	// The mutation is visible through a fresh store on the same backend.
	reloaded, err := NewStore(store.backend, testKey).Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if reloaded.Len() != 3 {
		t.Errorf("persisted count = %d, want 3", reloaded.Len())
	}
}

func TestStore_AddSubCentConverges(t *testing.T) {
	// Sub-cent input is rounded at parse time, so the returned record,
	// the cached snapshot and the persisted blob all hold the same value.
	store, _ := newTestStore(t, seedTable)
	ctx := context.Background()

	tx, _, err := store.Add(ctx, TransactionFields{
		Description: "Interest",
		Kind:        "income",
		Amount:      "10.0049",
		Category:    "bank",
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if tx.Amount.String() != "10" {
		t.Errorf("Amount = %s, want 10", tx.Amount)
	}

	reloaded, err := NewStore(store.backend, testKey).Load(ctx)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	got, ok := reloaded.Get(tx.ID)
	if !ok {
		t.Fatalf("persisted blob is missing transaction %q", tx.ID)
	}
	if !got.Amount.Equal(tx.Amount) {
		t.Errorf("persisted Amount = %s, cached %s, want equal", got.Amount, tx.Amount)
	}

	// An amount that rounds to zero is no longer strictly positive.
	_, _, err = store.Add(ctx, TransactionFields{
		Description: "Dust",
		Kind:        "income",
		Amount:      "0.0049",
		Category:    "bank",
	})
	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("Add() error = %v, want *ValidationError", err)
	}
}

func TestStore_AddValidation(t *testing.T) {
	valid := TransactionFields{Description: "d", Kind: "income", Amount: "10", Category: "c"}

	testCases := []struct {
		name   string
		mutate func(TransactionFields) TransactionFields
	}{
		{"empty description", func(f TransactionFields) TransactionFields { f.Description = "  "; return f }},
		{"empty category", func(f TransactionFields) TransactionFields { f.Category = " "; return f }},
		{"unknown kind", func(f TransactionFields) TransactionFields { f.Kind = "transfer"; return f }},
		{"missing kind", func(f TransactionFields) TransactionFields { f.Kind = ""; return f }},
		{"zero amount", func(f TransactionFields) TransactionFields { f.Amount = "0"; return f }},
		{"negative amount", func(f TransactionFields) TransactionFields { f.Amount = "-5"; return f }},
		{"textual amount", func(f TransactionFields) TransactionFields { f.Amount = "ten"; return f }},
		{"bad date", func(f TransactionFields) TransactionFields { f.Date = "someday"; return f }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, _ := newTestStore(t, seedTable)
			ctx := context.Background()

			_, _, err := store.Add(ctx, tc.mutate(valid))
			var v *ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("Add() error = %v, want *ValidationError", err)
			}

			// The record set is unchanged.
			ledger, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if ledger.Len() != 2 {
				t.Errorf("Len() = %d after rejected add, want 2", ledger.Len())
			}
		})
	}
}

func TestStore_AddBatch(t *testing.T) {
	ctx := context.Background()
	valid := TransactionFields{Description: "d", Kind: "expense", Amount: "10", Category: "c", Date: "2025-03-01"}

	t.Run("applies all items", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		txs, count, err := store.AddBatch(ctx, []TransactionFields{valid, valid, valid})
		if err != nil {
			t.Fatalf("AddBatch() error = %v", err)
		}
		if len(txs) != 3 || count != 5 {
			t.Errorf("AddBatch() = %d txs, count %d, want 3 and 5", len(txs), count)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		_, _, err := store.AddBatch(ctx, nil)
		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("AddBatch(nil) error = %v, want *ValidationError", err)
		}
	})

	t.Run("oversized batch", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		batch := make([]TransactionFields, MaxBatch+1)
		for i := range batch {
			batch[i] = valid
		}
		_, _, err := store.AddBatch(ctx, batch)
		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("AddBatch(oversized) error = %v, want *ValidationError", err)
		}
	})

	t.Run("atomic on invalid item", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		bad := valid
		bad.Amount = "-1"
		batch := []TransactionFields{valid, valid, bad, valid, valid}

		_, _, err := store.AddBatch(ctx, batch)
		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("AddBatch() error = %v, want *ValidationError", err)
		}
		if v.Index != 3 {
			t.Errorf("Index = %d, want 3", v.Index)
		}

		// No partial append: the set is exactly as before the call.
		ledger, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if ledger.Len() != 2 {
			t.Errorf("Len() = %d after aborted batch, want 2", ledger.Len())
		}
	})
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		tx, err := store.Update(ctx, "a2", TransactionFields{Amount: "350"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if tx.Amount.String() != "350" {
			t.Errorf("Amount = %s, want 350", tx.Amount)
		}
		// untouched fields survive
		if tx.Description != "Groceries" || tx.Category != "food" || tx.Kind != Expense {
			t.Errorf("Update() touched unrelated fields: %+v", tx)
		}
	})

	t.Run("no fields", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		_, err := store.Update(ctx, "a2", TransactionFields{})
		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("Update() error = %v, want *ValidationError", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		_, err := store.Update(ctx, "nope", TransactionFields{Amount: "1"})
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Update() error = %v, want *NotFoundError", err)
		}
	})

	t.Run("invalid field", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		_, err := store.Update(ctx, "a2", TransactionFields{Kind: "transfer"})
		var v *ValidationError
		if !errors.As(err, &v) {
			t.Fatalf("Update() error = %v, want *ValidationError", err)
		}
		// the cached record is untouched
		ledger, _ := store.Load(ctx)
		if tx, _ := ledger.Get("a2"); tx.Kind != Expense {
			t.Errorf("rejected update leaked into the cache: %+v", tx)
		}
	})
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and persists", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		removed, count, err := store.Delete(ctx, "a1")
		if err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if removed.ID != "a1" || count != 1 {
			t.Errorf("Delete() = (%q, %d), want (a1, 1)", removed.ID, count)
		}
		reloaded, err := NewStore(store.backend, testKey).Load(ctx)
		if err != nil {
			t.Fatalf("reload error = %v", err)
		}
		if reloaded.Len() != 1 {
			t.Errorf("persisted count = %d, want 1", reloaded.Len())
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		store, _ := newTestStore(t, seedTable)
		_, _, err := store.Delete(ctx, "nope")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("Delete() error = %v, want *NotFoundError", err)
		}
		ledger, _ := store.Load(ctx)
		if ledger.Len() != 2 {
			t.Errorf("Len() = %d after rejected delete, want 2", ledger.Len())
		}
	})
}

func TestStore_FailedWriteLeavesCacheUntouched(t *testing.T) {
	store, backend := newTestStore(t, seedTable)
	ctx := context.Background()

	if _, err := store.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	backend.FailPut = errors.New("backend down")

	_, _, err := store.Add(ctx, TransactionFields{Description: "d", Kind: "income", Amount: "10", Category: "c"})
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Add() error = %v, want *BackendError", err)
	}

	ledger, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ledger.Len() != 2 {
		t.Errorf("Len() = %d after failed write, want 2", ledger.Len())
	}
}
