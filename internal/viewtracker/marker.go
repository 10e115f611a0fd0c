package viewtracker

import (
	"sync"
	"time"
)

// SessionMarkers is an in-memory MarkerStore that never expires, scoped to
// one browsing session. The zero value is not usable; call
// NewSessionMarkers.
type SessionMarkers struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewSessionMarkers() *SessionMarkers {
	return &SessionMarkers{seen: make(map[string]bool)}
}

func (s *SessionMarkers) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen[key]
}

func (s *SessionMarkers) Set(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[key] = true
}

// ExpiringMarkers is a MarkerStore whose entries lapse after a TTL. The HTTP
// endpoint uses it keyed by client IP, approximating the per-session dedup a
// browser gets from sessionStorage. Expired entries are swept lazily on
// access.
type ExpiringMarkers struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

func NewExpiringMarkers(ttl time.Duration) *ExpiringMarkers {
	return &ExpiringMarkers{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (e *ExpiringMarkers) Has(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	deadline, ok := e.entries[key]
	if !ok {
		return false
	}
	if e.now().After(deadline) {
		delete(e.entries, key)
		return false
	}
	return true
}

func (e *ExpiringMarkers) Set(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	// Piggyback a sweep so the map does not grow without bound.
	if len(e.entries) > 10000 {
		for k, deadline := range e.entries {
			if now.After(deadline) {
				delete(e.entries, k)
			}
		}
	}
	e.entries[key] = now.Add(e.ttl)
}
