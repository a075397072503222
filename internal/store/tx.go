package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
)

type document struct {
	raw     []byte
	existed bool
	value   any
	staged  any
	dirty   bool
}

// Tx caches every collection it reads and stages every collection it writes.
type Tx struct {
	ctx   context.Context
	store *Store
	docs  map[string]*document
}

func newTx(ctx context.Context, s *Store) *Tx {
	return &Tx{ctx: ctx, store: s, docs: make(map[string]*document)}
}

type validatable[T any] interface {
	*T
	Validate() error
}

func load[T any, P validatable[T]](tx *Tx, name string, fallback func() []T) ([]T, error) {
	doc, ok := tx.docs[name]
	if !ok {
		raw, existed, err := tx.store.backend.Get(tx.ctx, name)
		if err != nil {
			return nil, unavailable("read", name, err)
		}
		doc = &document{raw: raw, existed: existed}

		var records []T
		if existed {
			if err := json.Unmarshal(raw, &records); err != nil {
				return nil, unavailable("decode", name, err)
			}
			for i := range records {
				if err := P(&records[i]).Validate(); err != nil {
					return nil, fmt.Errorf("%w: %s[%d]: %v", domain.ErrStorageUnavailable, name, i, err)
				}
			}
		} else if fallback != nil {
			records = fallback()
		}
		doc.value = records
		tx.docs[name] = doc
	}

	current := doc.value
	if doc.dirty {
		current = doc.staged
	}
	records, _ := current.([]T)
	return append([]T(nil), records...), nil
}

func stage[T any, P validatable[T]](tx *Tx, name string, records []T) error {
	for i := range records {
		if err := P(&records[i]).Validate(); err != nil {
			return err
		}
	}
	doc, ok := tx.docs[name]
	if !ok {
		// Keep the pre-commit snapshot for rollback.
		raw, existed, err := tx.store.backend.Get(tx.ctx, name)
		if err != nil {
			return unavailable("read", name, err)
		}
		doc = &document{raw: raw, existed: existed}
		tx.docs[name] = doc
	}
	doc.staged = append([]T(nil), records...)
	doc.dirty = true
	return nil
}

type pendingWrite struct {
	name string
	data []byte
	doc  *document
}

func (tx *Tx) commit() error {
	var writes []pendingWrite
	for _, name := range commitOrder {
		doc, ok := tx.docs[name]
		if !ok || !doc.dirty {
			continue
		}
		data, err := json.Marshal(doc.staged)
		if err != nil {
			return unavailable("encode", name, err)
		}
		writes = append(writes, pendingWrite{name: name, data: data, doc: doc})
	}

	for i, w := range writes {
		if err := tx.store.backend.Put(tx.ctx, w.name, w.data); err != nil {
			tx.rollback(writes[:i])
			return unavailable("write", w.name, err)
		}
	}
	return nil
}

func (tx *Tx) rollback(written []pendingWrite) {
	// Rollback must run even if the request context was cancelled.
	ctx := context.WithoutCancel(tx.ctx)
	for i := len(written) - 1; i >= 0; i-- {
		w := written[i]
		var err error
		if w.doc.existed {
			err = tx.store.backend.Put(ctx, w.name, w.doc.raw)
		} else {
			err = tx.store.backend.Delete(ctx, w.name)
		}
		if err != nil {
			tx.store.log.Error("rollback_failed", zap.String("collection", w.name), zap.Error(err))
			continue
		}
		tx.store.log.Warn("collection_rolled_back", zap.String("collection", w.name))
	}
}
