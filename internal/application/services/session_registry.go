package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tricoghealth/intake-assistant/internal/domain/entities"
)

// SessionRegistry tracks the active in-memory sessions keyed by connection
// ID. Sessions are transient: a removed or evicted session is gone for
// good, though its intake record stays in the database.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*entities.Session
}

// NewSessionRegistry creates an empty session registry
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*entities.Session),
	}
}

// Put registers a session under its connection ID, replacing any previous
// session for the same connection.
func (r *SessionRegistry) Put(session *entities.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ConnectionID] = session
}

// Get returns the session for a connection, if one exists
func (r *SessionRegistry) Get(connectionID string) (*entities.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[connectionID]
	return session, ok
}

// Remove drops the session for a connection
func (r *SessionRegistry) Remove(connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, connectionID)
}

// Len returns the number of active sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// EvictIdle removes sessions with no activity since the cutoff and returns
// how many were evicted.
func (r *SessionRegistry) EvictIdle(idleTimeout time.Duration) int {
	cutoff := time.Now().Add(-idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for connectionID, session := range r.sessions {
		if session.LastActivity.Before(cutoff) {
			delete(r.sessions, connectionID)
			evicted++
			log.Info().
				Str("session_id", session.SessionID).
				Str("connection_id", connectionID).
				Msg("Evicted idle session")
		}
	}
	return evicted
}

// StartSweeper evicts idle sessions on a fixed interval until the context
// is cancelled.
func (r *SessionRegistry) StartSweeper(ctx context.Context, interval, idleTimeout time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if evicted := r.EvictIdle(idleTimeout); evicted > 0 {
					log.Info().Int("evicted", evicted).Msg("Idle session sweep completed")
				}
			}
		}
	}()
}
