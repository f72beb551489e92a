package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusjobboard/portal/internal/core/domain"
)

// Hash fields mirror the portal's session storage keys.
const (
	fieldToken    = "token"
	fieldRole     = "role"
	fieldFullName = "fullName"
)

// SessionStore keeps each browser session in a Redis hash.
// Key format: session:<session_id>
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	vals, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(vals) == 0 {
		return nil, domain.ErrNoSession
	}
	return &domain.Session{
		Token:    vals[fieldToken],
		Role:     domain.Role(vals[fieldRole]),
		FullName: vals[fieldFullName],
	}, nil
}

// Save writes all three fields and the expiry in one transaction so a
// reader never sees a token without its role.
func (s *SessionStore) Save(ctx context.Context, id string, sess *domain.Session, ttl time.Duration) error {
	key := s.key(id)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldToken, sess.Token,
			fieldRole, string(sess.Role),
			fieldFullName, sess.FullName,
		)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
