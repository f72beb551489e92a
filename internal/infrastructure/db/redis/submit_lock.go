package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 10 * time.Second

// releaseScript deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SubmitLock marks a form submission as in flight so a repeated click is
// rejected instead of reaching the API twice.
// Key format: submit:<session_id>:<action>
type SubmitLock struct {
	client *redis.Client
}

// NewSubmitLock creates a SubmitLock wrapping the given Redis client.
func NewSubmitLock(client *redis.Client) *SubmitLock {
	return &SubmitLock{client: client}
}

// Acquire takes the lock unless it is already held. The lock expires after
// ttl even if Release is never called.
func (l *SubmitLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key(key), token, ttl).Result()
	if err != nil {
		return "", false, fmt.Errorf("submit lock acquire: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release drops the lock if token still holds it.
func (l *SubmitLock) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key(key)}, token).Err(); err != nil {
		return fmt.Errorf("submit lock release: %w", err)
	}
	return nil
}

func (l *SubmitLock) key(key string) string {
	return "submit:" + key
}
