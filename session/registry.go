package session

import "sync"

// Registry maps session identifiers to Sessions. Concurrent GetOrCreate
// calls for distinct ids are safe; turns within one session are expected to
// come from a single caller at a time. Sessions live until the process ends.
//
// The registry is an explicit dependency passed to the engine, never ambient
// global state, so tests can substitute isolated instances.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the Session for id, creating it on first contact.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s = &Session{id: id}
	r.sessions[id] = s
	return s
}

// Get returns the Session for id if one exists.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
