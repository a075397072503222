// Package store is the record store: typed, validated access to the named
// collections kept behind a domain.CollectionBackend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// commitOrder lists collections in write order. Users is the source of truth
// for points and goes last.
var commitOrder = []string{
	domain.CollectionWateringRecords,
	domain.CollectionSubmissions,
	domain.CollectionRedemptions,
	domain.CollectionQuizzes,
	domain.CollectionEvents,
	domain.CollectionUsers,
}

type Store struct {
	backend domain.CollectionBackend
	log     *zap.Logger
	now     func() time.Time

	// Serializes transactions; adapters deliver requests concurrently.
	mu sync.Mutex
}

func New(backend domain.CollectionBackend, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		backend: backend,
		log:     logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Init writes the default document of every collection that does not exist
// yet: empty lists, plus the demo quiz.
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range commitOrder {
		_, ok, err := s.backend.Get(ctx, name)
		if err != nil {
			return unavailable("read", name, err)
		}
		if ok {
			continue
		}
		var data []byte
		if name == domain.CollectionQuizzes {
			data, err = json.Marshal(DefaultQuizzes(s.now()))
		} else {
			data = []byte("[]")
		}
		if err != nil {
			return unavailable("encode", name, err)
		}
		if err := s.backend.Put(ctx, name, data); err != nil {
			return unavailable("write", name, err)
		}
		s.log.Info("collection_initialized", zap.String("collection", name))
	}
	return nil
}

// View runs fn against a read-only snapshot.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(newTx(ctx, s))
}

// Update runs fn and, when it returns nil, commits every staged collection.
// A failed commit restores the collections already written, so callers never
// observe a partial mutation.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newTx(ctx, s)
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func unavailable(op, collection string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", domain.ErrStorageUnavailable, op, collection, err)
}
