// ABOUTME: Registry holds the active chat session behind a lock
// ABOUTME: Replacement is atomic; turns in flight keep their own session pointer
package chat

import (
	"sync"

	"github.com/learnrise/learnrise/internal/errdefs"
)

// Registry tracks chat sessions by token and the current active session.
// Processing a new transcript replaces the active session wholesale; the
// previous session stays reachable by token until it is replaced again.
type Registry struct {
	mu       sync.RWMutex
	current  *Session
	previous *Session
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Replace installs the session as current and returns its token
func (r *Registry) Replace(s *Session) string {
	r.mu.Lock()
	r.previous = r.current
	r.current = s
	r.mu.Unlock()
	return s.ID()
}

// Current returns the active session, or NOT_READY when none exists
func (r *Registry) Current() (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil, errdefs.New(errdefs.CodeNotReady, "Please process a transcript first")
	}
	return r.current, nil
}

// Get looks up a session by its token among the current and most recent sessions
func (r *Registry) Get(token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current != nil && r.current.ID() == token {
		return r.current, nil
	}
	if r.previous != nil && r.previous.ID() == token {
		return r.previous, nil
	}
	return nil, errdefs.Newf(errdefs.CodeNotReady, "unknown session %q", token)
}
