// Package session binds the portal's session-scoped storage to a request and
// guards pages by role.
//
// Only the Scope (used by the API gateway) and the Guard read or write
// session records; handlers never touch the SessionStore directly.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

var timeNow = time.Now

// Scope is the session storage of one browser, addressed by the ID in its
// session cookie. It is safe for concurrent use within a request.
type Scope struct {
	mu       sync.Mutex
	id       string
	store    ports.SessionStore
	ttl      time.Duration
	onRotate func(id string)

	loaded  bool
	current *domain.Session
}

// NewScope returns a scope for id. onRotate is called with the new ID
// whenever the scope issues one, so the caller can refresh the cookie.
func NewScope(id string, store ports.SessionStore, ttl time.Duration, onRotate func(id string)) *Scope {
	return &Scope{id: id, store: store, ttl: ttl, onRotate: onRotate}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

func (s *Scope) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Current returns the stored session. Incomplete records and tokens whose
// JWT expiry has passed count as absent and yield domain.ErrNoSession.
func (s *Scope) Current(ctx context.Context) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		if s.current == nil {
			return nil, domain.ErrNoSession
		}
		return s.current, nil
	}

	sess, err := s.store.Load(ctx, s.id)
	if err != nil && !errors.Is(err, domain.ErrNoSession) {
		return nil, err
	}
	s.loaded = true

	if !sess.Valid() || tokenExpired(sess.Token, timeNow()) {
		if sess != nil {
			_ = s.store.Delete(ctx, s.id)
		}
		return nil, domain.ErrNoSession
	}

	s.current = sess
	return sess, nil
}

// Token returns the bearer token of the current session.
func (s *Scope) Token(ctx context.Context) (string, error) {
	sess, err := s.Current(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// replace persists sess under a newly issued ID, dropping the old record.
func (s *Scope) replace(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldID := s.id
	newID := NewID()
	if err := s.store.Save(ctx, newID, sess, s.ttl); err != nil {
		return err
	}
	if oldID != "" {
		_ = s.store.Delete(ctx, oldID)
	}

	s.id = newID
	s.loaded = true
	s.current = sess
	if s.onRotate != nil {
		s.onRotate(newID)
	}
	return nil
}

// Clear removes every key of the session.
func (s *Scope) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.current = nil
	return s.store.Delete(ctx, s.id)
}

// tokenExpired reads the exp claim without verifying the signature; the API
// stays authoritative. Opaque tokens never count as expired here.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(now)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying sc.
func NewContext(ctx context.Context, sc *Scope) context.Context {
	return context.WithValue(ctx, ctxKey{}, sc)
}

// FromContext returns the scope bound by the session middleware.
func FromContext(ctx context.Context) (*Scope, bool) {
	sc, ok := ctx.Value(ctxKey{}).(*Scope)
	return sc, ok && sc != nil
}
