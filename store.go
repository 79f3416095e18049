package pfm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
)

// MaxBatch is the maximum number of items accepted by Store.AddBatch.
const MaxBatch = 20

// Store owns the canonical in-memory record set and its persistence.
//
// A Store is constructed once per process and passed by reference to every
// caller; the first Load fetches and normalizes the backing blob, and the
// snapshot is cached for the process lifetime. Every successful mutation
// re-serializes the entire record set and overwrites the backing blob in
// full; the cache is only updated after the backend write succeeds, so a
// failed write never leaves a partially mutated snapshot observable.
//
// Distinct processes each hold an independent cache loaded from the same
// blob. Two of them mutating concurrently race: the second full-set
// rewrite silently discards the first one's change. This last-write-wins
// behavior is a documented limitation of the flat-file backing store, not
// something the Store papers over.
type Store struct {
	backend Backend
	key     string
	cache   *Ledger
}

// NewStore returns a Store persisting the record set as one blob under key.
func NewStore(backend Backend, key string) *Store {
	return &Store{backend: backend, key: key}
}

// Load returns the canonical record set. The first call fetches the blob
// and normalizes it; subsequent calls return the cached set without
// touching the backend. When normalization backfilled identifiers, one
// persistence pass stamps them back to storage before returning.
func (s *Store) Load(ctx context.Context) (*Ledger, error) {
	if s.cache != nil {
		return s.cache, nil
	}

	data, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, &BackendError{Op: "get", Err: err}
	}
	ledger, err := DecodeLedger(bytes.NewReader(data))
	if err != nil {
		var schema *SchemaError
		if errors.As(err, &schema) {
			return nil, err
		}
		return nil, &BackendError{Op: "get", Err: err}
	}
	if ledger.Dropped() > 0 {
		log.Printf("ledger %q: dropped %d malformed rows during normalization", s.key, ledger.Dropped())
	}
	if ledger.NeedsRewrite() {
		// Stamp the generated identifiers back to storage. The load
		// itself succeeded, so a failed stamp is only logged: backfill
		// is idempotent and the next mutation rewrites the blob anyway.
		if err := s.persist(ctx, ledger); err != nil {
			log.Printf("ledger %q: could not stamp backfilled identifiers: %v", s.key, err)
		} else {
			ledger.needsRewrite = false
		}
	}
	s.cache = ledger
	return s.cache, nil
}

// Add validates the supplied fields, appends a new transaction with a
// fresh identifier, persists the full set and returns the new record along
// with the new total count.
func (s *Store) Add(ctx context.Context, f TransactionFields) (Transaction, int, error) {
	ledger, err := s.Load(ctx)
	if err != nil {
		return Transaction{}, 0, err
	}
	tx, err := NewTransaction(f)
	if err != nil {
		return Transaction{}, 0, err
	}

	next := ledger.clone()
	next.Append(tx)
	if err := s.persist(ctx, next); err != nil {
		return Transaction{}, 0, err
	}
	s.cache = next
	return tx, next.Len(), nil
}

// AddBatch is the batch variant of Add. It repeats the same validation per
// item and applies all of them or none: an empty list or more than
// MaxBatch items rejects the batch, and a per-item validation failure
// aborts the whole batch with an error carrying the failing item's
// 1-based position.
func (s *Store) AddBatch(ctx context.Context, fs []TransactionFields) ([]Transaction, int, error) {
	if len(fs) == 0 {
		return nil, 0, invalidf("batch is empty")
	}
	if len(fs) > MaxBatch {
		return nil, 0, invalidf("batch has %d items, maximum is %d", len(fs), MaxBatch)
	}
	ledger, err := s.Load(ctx)
	if err != nil {
		return nil, 0, err
	}

	txs := make([]Transaction, 0, len(fs))
	for i, f := range fs {
		tx, err := NewTransaction(f)
		if err != nil {
			if v, ok := err.(*ValidationError); ok {
				return nil, 0, &ValidationError{Index: i + 1, Reason: v.Reason}
			}
			return nil, 0, err
		}
		txs = append(txs, tx)
	}

	next := ledger.clone()
	next.Append(txs...)
	if err := s.persist(ctx, next); err != nil {
		return nil, 0, err
	}
	s.cache = next
	return txs, next.Len(), nil
}

// Update applies the supplied fields to the transaction with the given id,
// validating only the fields provided, persists the full set and returns
// the updated record.
func (s *Store) Update(ctx context.Context, id string, f TransactionFields) (Transaction, error) {
	if f.IsZero() {
		return Transaction{}, invalidf("at least one field must be provided")
	}
	ledger, err := s.Load(ctx)
	if err != nil {
		return Transaction{}, err
	}
	i := ledger.indexOf(id)
	if i < 0 {
		return Transaction{}, &NotFoundError{ID: id}
	}
	tx, err := ledger.transactions[i].apply(f)
	if err != nil {
		return Transaction{}, err
	}

	next := ledger.clone()
	next.transactions[i] = tx
	if err := s.persist(ctx, next); err != nil {
		return Transaction{}, err
	}
	s.cache = next
	return tx, nil
}

// Delete removes the transaction with the given id, persists the full set
// and returns the removed record along with the new total count.
func (s *Store) Delete(ctx context.Context, id string) (Transaction, int, error) {
	ledger, err := s.Load(ctx)
	if err != nil {
		return Transaction{}, 0, err
	}
	i := ledger.indexOf(id)
	if i < 0 {
		return Transaction{}, 0, &NotFoundError{ID: id}
	}
	removed := ledger.transactions[i]

	next := ledger.clone()
	next.transactions = append(next.transactions[:i], next.transactions[i+1:]...)
	if err := s.persist(ctx, next); err != nil {
		return Transaction{}, 0, err
	}
	s.cache = next
	return removed, next.Len(), nil
}

// CreateLedger writes an empty ledger blob under key, for first-run setups
// where the backend holds no blob yet. Loading an absent key is an error,
// not an implicit creation.
func CreateLedger(ctx context.Context, backend Backend, key string) error {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, NewLedger()); err != nil {
		return fmt.Errorf("cannot serialize ledger: %w", err)
	}
	if err := backend.Put(ctx, key, buf.Bytes()); err != nil {
		return &BackendError{Op: "put", Err: err}
	}
	return nil
}

// persist re-serializes the whole record set and overwrites the backing
// blob. There is no incremental or append write path.
func (s *Store) persist(ctx context.Context, ledger *Ledger) error {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, ledger); err != nil {
		return fmt.Errorf("cannot serialize ledger: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, buf.Bytes()); err != nil {
		return &BackendError{Op: "put", Err: err}
	}
	return nil
}
