package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fardannozami/ecoplay/internal/domain"
)

// Registry keeps signed-in sessions in memory, keyed by token.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *Registry) Create(userID string, admin bool) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sweepLocked()
	s := domain.Session{
		Token:  uuid.NewString(),
		UserID: userID,
		Admin:  admin,
	}
	if r.ttl > 0 {
		s.ExpiresAt = r.now().Add(r.ttl)
	}
	r.sessions[s.Token] = s
	return s
}

// Get returns the live session for token. Expired sessions are dropped.
func (r *Registry) Get(token string) (domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return domain.Session{}, false
	}
	if s.Expired(r.now()) {
		delete(r.sessions, token)
		return domain.Session{}, false
	}
	return s, true
}

func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
}

func (r *Registry) sweepLocked() {
	now := r.now()
	for token, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, token)
		}
	}
}
