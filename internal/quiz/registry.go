package quiz

import (
	"context"
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle session survives before the
// registry reclaims it.
const DefaultSessionTTL = 30 * time.Minute

// Registry holds live sessions keyed by their opaque identity.
// Sessions are fully isolated from each other; the registry lock only
// guards the map, never a session's own state.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry creates a Registry reclaiming sessions idle longer
// than ttl. A non-positive ttl falls back to DefaultSessionTTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Put registers a session under its ID, replacing any prior session
// with the same identity.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Get returns the session for id, or ErrSessionNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session for id, if present.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartJanitor reclaims idle sessions every interval until ctx is
// cancelled.
func (r *Registry) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.sweep(time.Now())
			}
		}
	}()
}

// sweep removes sessions whose last activity is older than the TTL.
func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastAccess) > r.ttl
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
		}
	}
}
