// Package session tracks per-client protocol sessions in memory and
// evicts the ones that go idle.
package session

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates that no live session matches the supplied id,
// either because it was never created or because it has expired.
var ErrNotFound = errors.New("session not found")

// Meta captures the dispatch context negotiated during initialize.
type Meta struct {
	ProtocolVersion string
	ClientName      string
	ClientVersion   string
}

// Session is one client's bookkeeping record. Records are flat values;
// the registry hands out copies, never shared pointers.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	Meta         Meta
}

// Registry holds live sessions. Every mutation serializes on a single
// mutex, so touches for one id apply in arrival order. Callers must not
// hold registry calls open across conversion I/O; each method returns
// before any image work starts.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create registers a fresh session and returns its record. Ids are
// unique for the lifetime of the process.
func (r *Registry) Create(meta Meta) Session {
	now := r.now()
	s := Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
		Meta:         meta,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()

	Debugf("session %s created (client=%s %s)", s.ID, meta.ClientName, meta.ClientVersion)
	return s
}

// Touch refreshes the activity timestamp for id and returns the updated
// record. ErrNotFound when the id is absent.
func (r *Registry) Touch(id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	s.LastActivity = r.now()
	r.sessions[id] = s
	return s, nil
}

// Get returns the record for id without refreshing its activity.
func (r *Registry) Get(id string) (Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s, nil
}

// Count reports the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictExpired removes every session idle strictly longer than timeout
// as of now, and returns the removed ids sorted for stable logging. A
// session touched exactly at the timeout boundary survives.
func (r *Registry) EvictExpired(now time.Time, timeout time.Duration) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []string
	for id, s := range r.sessions {
		if now.Sub(s.LastActivity) > timeout {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	sort.Strings(evicted)
	if len(evicted) > 0 {
		Debugf("evicted %d session(s): %v", len(evicted), evicted)
	}
	return evicted
}
