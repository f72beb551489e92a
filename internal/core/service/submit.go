package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
	"github.com/campusjobboard/portal/internal/session"
)

const defaultLockTTL = 10 * time.Second

// submitGuard serialises submissions of one action per browser session.
type submitGuard struct {
	lock ports.SubmitLock
	ttl  time.Duration
}

func newSubmitGuard(lock ports.SubmitLock, ttl time.Duration) submitGuard {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return submitGuard{lock: lock, ttl: ttl}
}

// run executes fn while holding the lock for action. A concurrent
// submission gets domain.ErrSubmitInProgress and fn is not called.
func (g submitGuard) run(ctx context.Context, action string, fn func() error) error {
	sc, ok := session.FromContext(ctx)
	if g.lock == nil || !ok {
		return fn()
	}

	key := sc.ID() + ":" + action
	token, acquired, err := g.lock.Acquire(ctx, key, g.ttl)
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	if !acquired {
		return domain.ErrSubmitInProgress
	}
	defer func() { _ = g.lock.Release(context.WithoutCancel(ctx), key, token) }()

	return fn()
}
