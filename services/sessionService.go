package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PageSession is the ephemeral state behind a paginated view (lore history,
// moment lists). Sessions belong to the presentation layer: they expire on
// their own and never touch submission or document state.
type PageSession struct {
	Session_ID   string    `json:"sessionId"`
	Community_ID int64     `json:"communityId"`
	Member_ID    int64     `json:"memberId"`
	View         string    `json:"view"`
	Page         int       `json:"page"`
	Expires_At   time.Time `json:"expiresAt"`
}

// SessionStore holds pagination sessions with TTL eviction.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]PageSession
}

// NewSessionStore returns a store whose sessions expire after ttl of
// inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]PageSession),
	}
}

// Create opens a session for a member viewing a paginated surface and
// returns its id.
func (s *SessionStore) Create(communityID int64, memberID int64, view string) PageSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()

	session := PageSession{
		Session_ID:   uuid.NewString(),
		Community_ID: communityID,
		Member_ID:    memberID,
		View:         view,
		Page:         0,
		Expires_At:   time.Now().Add(s.ttl),
	}
	s.sessions[session.Session_ID] = session
	return session
}

// Get returns the session if it exists and has not expired. A hit refreshes
// the expiry window.
func (s *SessionStore) Get(sessionID string) (PageSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return PageSession{}, false
	}
	if time.Now().After(session.Expires_At) {
		delete(s.sessions, sessionID)
		return PageSession{}, false
	}

	session.Expires_At = time.Now().Add(s.ttl)
	s.sessions[sessionID] = session
	return session, true
}

// SetPage moves the session to the given page. Returns false when the
// session is gone.
func (s *SessionStore) SetPage(sessionID string, page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok || time.Now().After(session.Expires_At) {
		delete(s.sessions, sessionID)
		return false
	}
	if page < 0 {
		page = 0
	}
	session.Page = page
	session.Expires_At = time.Now().Add(s.ttl)
	s.sessions[sessionID] = session
	return true
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.sessions)
}

func (s *SessionStore) evictLocked() {
	now := time.Now()
	for id, session := range s.sessions {
		if now.After(session.Expires_At) {
			delete(s.sessions, id)
		}
	}
}

var pageSessions *SessionStore

// InitSessionService builds the shared pagination session store.
func InitSessionService() {
	pageSessions = NewSessionStore(5 * time.Minute)
	log.Println("Session service initialized")
}

// GetSessionStore returns the shared pagination session store.
func GetSessionStore() *SessionStore {
	return pageSessions
}
