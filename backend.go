package pfm

import (
	"context"
	"errors"
	"sync"
)

// Backend is the blob get/put interface the store persists through. The
// store treats it as opaque object storage: one key, whole-blob reads and
// whole-blob overwrites.
type Backend interface {
	// Get returns the raw bytes stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error
}

// ErrKeyNotFound is returned by Backend.Get when no blob exists under the
// requested key.
var ErrKeyNotFound = errors.New("key not found")

// MemBackend is an in-memory Backend, mostly useful in tests.
type MemBackend struct {
	mu    sync.Mutex
	blobs map[string][]byte

	// FailPut, when set, makes every Put return this error. Tests use it
	// to check that a failed write leaves the cached set unchanged.
	FailPut error
}

// NewMemBackend returns an empty in-memory backend.
func NewMemBackend() *MemBackend {
	return &MemBackend{blobs: make(map[string][]byte)}
}

func (b *MemBackend) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.blobs[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), data...), nil
}

func (b *MemBackend) Put(_ context.Context, key string, data []byte) error {
	if b.FailPut != nil {
		return b.FailPut
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blobs[key] = append([]byte(nil), data...)
	return nil
}
