package memory

import (
	"context"
	"sync"
)

// CollectionBackend keeps collections in process memory. Used by tests and by
// STORE_BACKEND=memory for throwaway demo runs.
type CollectionBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewCollectionBackend() *CollectionBackend {
	return &CollectionBackend{docs: make(map[string][]byte)}
}

func (b *CollectionBackend) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, ok := b.docs[collection]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (b *CollectionBackend) Put(ctx context.Context, collection string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[collection] = append([]byte(nil), data...)
	return nil
}

func (b *CollectionBackend) Delete(ctx context.Context, collection string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.docs, collection)
	return nil
}
