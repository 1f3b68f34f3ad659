package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const sessionIdleTimeout = 30 * time.Minute

type sessionEntry struct {
	manager  *ContextManager
	lastSeen time.Time
}

// SessionRegistry hands each conversation its own context manager, keyed
// by session id. Idle sessions are evicted lazily on access.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	turnLimit int
}

func NewSessionRegistry(turnLimit int) *SessionRegistry {
	return &SessionRegistry{
		sessions:  make(map[string]*sessionEntry),
		turnLimit: turnLimit,
	}
}

// Acquire returns the context manager for the session, creating the
// session when the id is empty or unknown. The returned id is always
// non-empty and should be echoed back to the client.
func (r *SessionRegistry) Acquire(sessionID string) (string, *ContextManager) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.evictIdle(now)

	if sessionID != "" {
		if entry, ok := r.sessions[sessionID]; ok {
			entry.lastSeen = now
			return sessionID, entry.manager
		}
	}

	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	entry := &sessionEntry{manager: NewContextManager(r.turnLimit), lastSeen: now}
	r.sessions[sessionID] = entry
	return sessionID, entry.manager
}

// Len reports how many live sessions the registry holds.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) evictIdle(now time.Time) {
	for id, entry := range r.sessions {
		if now.Sub(entry.lastSeen) > sessionIdleTimeout {
			delete(r.sessions, id)
		}
	}
}
