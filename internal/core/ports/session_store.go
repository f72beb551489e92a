package ports

import (
	"context"
	"time"

	"github.com/campusjobboard/portal/internal/core/domain"
)

// SessionStore persists browser sessions keyed by session ID.
// Load returns domain.ErrNoSession when nothing is stored under id.
type SessionStore interface {
	Load(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, id string, s *domain.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// SubmitLock keeps one submission of a given action in flight per session.
type SubmitLock interface {
	// Acquire returns false when the key is already held. The returned
	// token identifies this holder to Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release drops the lock only while token still holds it, so a holder
	// that outlived its ttl cannot free a later submission's lock.
	Release(ctx context.Context, key, token string) error
}

// SessionGuard starts and ends the session bound to a request context.
type SessionGuard interface {
	Begin(ctx context.Context, s *domain.Session) error
	End(ctx context.Context) error
}
