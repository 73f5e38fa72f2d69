// pkg/memcache/ttl_store.go
package mem

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLStore is a mutex guarded map whose entries expire after a fixed TTL.
// Every write refreshes the entry's expiry.
type TTLStore[V any] struct {
	mu   sync.Mutex
	ttl  time.Duration
	data map[string]entry[V]
	now  func() time.Time
}

func NewTTLStore[V any](ttl time.Duration) *TTLStore[V] {
	return &TTLStore[V]{
		ttl:  ttl,
		data: make(map[string]entry[V]),
		now:  time.Now,
	}
}

// Get returns the value for key if present and not expired.
func (s *TTLStore[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(key)
}

// Update runs fn with the current value (ok=false when missing or expired)
// and stores what it returns. Nothing is stored when fn fails. fn runs under
// the store lock and must not call back into the store.
func (s *TTLStore[V]) Update(key string, fn func(current V, ok bool) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.getLocked(key)
	next, err := fn(current, ok)
	if err != nil {
		var zero V
		return zero, err
	}
	s.setLocked(key, next)
	return next, nil
}

func (s *TTLStore[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

// Sweep drops expired entries and reports how many were removed.
func (s *TTLStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

// Len counts stored entries, expired ones included until swept.
func (s *TTLStore[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *TTLStore[V]) getLocked(key string) (V, bool) {
	e, ok := s.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, key) // cleanup expired
		var zero V
		return zero, false
	}
	return e.value, true
}

func (s *TTLStore[V]) setLocked(key string, value V) {
	s.data[key] = entry[V]{
		value:     value,
		expiresAt: s.now().Add(s.ttl),
	}
}
