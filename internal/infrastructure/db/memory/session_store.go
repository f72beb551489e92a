// Package memory provides process-local session storage for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campusjobboard/portal/internal/core/domain"
)

type entry struct {
	session   domain.Session
	expiresAt time.Time
}

// SessionStore keeps sessions in a map. Expired entries are dropped lazily.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]entry
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]entry), now: time.Now}
}

func (s *SessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNoSession
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, domain.ErrNoSession
	}
	sess := e.session
	return &sess, nil
}

func (s *SessionStore) Save(_ context.Context, id string, sess *domain.Session, ttl time.Duration) error {
	e := entry{session: *sess}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.sessions[id] = e
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Ping(context.Context) error { return nil }

// Len reports the number of stored sessions, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SubmitLock is an in-process ports.SubmitLock.
type SubmitLock struct {
	mu   sync.Mutex
	held map[string]lease
	now  func() time.Time
}

type lease struct {
	token string
	until time.Time
}

func NewSubmitLock() *SubmitLock {
	return &SubmitLock{held: make(map[string]lease), now: time.Now}
}

func (l *SubmitLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, ok := l.held[key]; ok && now.Before(cur.until) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = lease{token: token, until: now.Add(ttl)}
	return token, true, nil
}

func (l *SubmitLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cur, ok := l.held[key]; ok && cur.token == token {
		delete(l.held, key)
	}
	return nil
}
