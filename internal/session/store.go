// Package session holds per-user conversation history for the process
// lifetime. Nothing is persisted; a restart discards all sessions.
package session

import (
	"sync"

	"github.com/lawpal/lawpal-go/internal/domain/entities"
)

// DefaultLimit is the sliding-window cap on records per session.
const DefaultLimit = 15

type key struct {
	service entities.ServiceCategory
	userID  string
}

// session serializes all mutation for one (service, user) pair. Sessions for
// different keys never contend.
type session struct {
	mu      sync.Mutex
	records []entities.TurnRecord
}

// Store owns every session history. Histories are created lazily on first
// access and live until process exit.
type Store struct {
	mu       sync.RWMutex
	sessions map[key]*session
	limit    int
}

// NewStore creates a Store with the given record cap per session.
func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{
		sessions: make(map[key]*session),
		limit:    limit,
	}
}

// History returns a copy of the stored records for a session, creating the
// session if it does not exist yet.
func (s *Store) History(service entities.ServiceCategory, userID string) []entities.TurnRecord {
	sess := s.get(service, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make([]entities.TurnRecord, len(sess.records))
	copy(out, sess.records)
	return out
}

// Append adds exactly one record to a session. Callers are responsible for
// alternating roles.
func (s *Store) Append(service entities.ServiceCategory, userID string, rec entities.TurnRecord) {
	sess := s.get(service, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.records = append(sess.records, rec)
}

// AppendTurn appends the user and bot records of one turn and trims, all
// under a single per-session lock, so a concurrent reader never observes a
// half-applied turn.
func (s *Store) AppendTurn(service entities.ServiceCategory, userID string, user, bot entities.TurnRecord) {
	sess := s.get(service, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.records = append(sess.records, user, bot)
	sess.trim(s.limit)
}

// Trim drops the oldest records beyond the cap, keeping the most recent.
func (s *Store) Trim(service entities.ServiceCategory, userID string) {
	sess := s.get(service, userID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.trim(s.limit)
}

func (sess *session) trim(limit int) {
	if len(sess.records) > limit {
		kept := make([]entities.TurnRecord, limit)
		copy(kept, sess.records[len(sess.records)-limit:])
		sess.records = kept
	}
}

func (s *Store) get(service entities.ServiceCategory, userID string) *session {
	k := key{service: service, userID: userID}

	s.mu.RLock()
	sess, ok := s.sessions[k]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[k]; ok {
		return sess
	}
	sess = &session{}
	s.sessions[k] = sess
	return sess
}
