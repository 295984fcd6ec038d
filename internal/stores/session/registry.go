package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	// ErrSessionExists is returned when creating a session whose id is already registered
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionNotFound is returned when the referenced session is not active.
	// Finalized sessions are removed from the registry, so operations against
	// them surface this error as well.
	ErrSessionNotFound = errors.New("session not found")
)

// Registry holds the in-flight interview sessions. Sessions enter when the
// voice provider grants one and leave on finalize; nothing here survives a
// process restart. All methods are safe for concurrent use.
type Registry struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session under the given id
func (r *Registry) Create(id string, startedAt time.Time) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session '%s': %w", id, ErrSessionExists)
	}

	sess := &Session{
		ID:        id,
		StartedAt: startedAt,
	}
	r.sessions[id] = sess

	return sess.clone(), nil
}

// Get retrieves a copy of an active session by id
func (r *Registry) Get(id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}

	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sess, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session '%s': %w", id, ErrSessionNotFound)
	}

	return sess.clone(), nil
}

// AppendTurn adds a turn to an active session and returns the new turn count.
// Turns are kept in arrival order; no reordering or deduplication is done.
func (r *Registry) AppendTurn(id string, turn Turn) (int, error) {
	if id == "" {
		return 0, fmt.Errorf("session id cannot be empty")
	}
	if !turn.Speaker.Valid() {
		return 0, fmt.Errorf("invalid speaker '%s'", turn.Speaker)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sess, exists := r.sessions[id]
	if !exists {
		return 0, fmt.Errorf("session '%s': %w", id, ErrSessionNotFound)
	}

	sess.Turns = append(sess.Turns, turn)
	return len(sess.Turns), nil
}

// Finalize flips a session to its finalized state, removes it from the
// registry, and returns the finalized snapshot. Only one caller can win for a
// given id; every later call reports ErrSessionNotFound, which is what keeps
// a double finalize from producing two transcript files.
func (r *Registry) Finalize(id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id cannot be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sess, exists := r.sessions[id]
	if !exists {
		return nil, fmt.Errorf("session '%s': %w", id, ErrSessionNotFound)
	}

	sess.Finalized = true
	delete(r.sessions, id)

	return sess.clone(), nil
}

// Active returns copies of all in-flight sessions, most recently started first
func (r *Registry) Active() []*Session {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	sessions := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		sessions = append(sessions, sess.clone())
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.After(sessions[j].StartedAt)
	})

	return sessions
}

// Count reports how many sessions are currently in flight
func (r *Registry) Count() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.sessions)
}
