package bot

import (
	"sync"
	"time"
)

type flowStage int

const (
	stageNone flowStage = iota
	stageName
	stageCity
	stageGrade
	stageUsername
	stageActionTitle
	stageActionDate
	stageActionLocation
	stageActionDescription
)

// registrationData accumulates fields of the registration flow.
type registrationData struct {
	Name     string
	City     string
	Grade    string
	Username string
}

// proposalData accumulates fields of the action-proposal flow.
type proposalData struct {
	Title       string
	Date        string
	Location    string
	Description string
}

// Session is per-user conversation progress. It lives only in process memory
// and is lost on restart.
type Session struct {
	Stage        flowStage
	Registration registrationData
	Proposal     proposalData
	UpdatedAt    time.Time
}

// SessionStore keeps conversation sessions keyed by Telegram user ID.
// Sessions are copied in and out so the sweeper and the poll loop never share
// a mutable value.
type SessionStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithClock(time.Now)
}

// NewSessionStoreWithClock allows tests to control time.
func NewSessionStoreWithClock(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{now: now, sessions: make(map[int64]Session)}
}

func (s *SessionStore) Get(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Put stores the session and stamps its activity time.
func (s *SessionStore) Put(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.UpdatedAt = s.now()
	s.sessions[userID] = sess
}

func (s *SessionStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// PurgeIdle drops sessions without activity for the given duration and
// returns how many were removed. Abandoned flows expire here instead of
// lingering forever.
func (s *SessionStore) PurgeIdle(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			removed++
		}
	}
	return removed
}
