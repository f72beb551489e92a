package session

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/core/domain"
)

// Guard checks the session before a protected page renders and owns the
// session lifecycle (begin on login, end on logout).
type Guard struct {
	log zerolog.Logger
}

func NewGuard(log zerolog.Logger) *Guard {
	return &Guard{log: log}
}

// Require returns the current session when its role is one of roles.
// With no roles any authenticated session passes. A missing session yields
// domain.ErrNoSession and a role mismatch domain.ErrRoleDenied; callers must
// stop rendering on either.
func (g *Guard) Require(ctx context.Context, roles ...domain.Role) (*domain.Session, error) {
	sc, ok := FromContext(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}

	sess, err := sc.Current(ctx)
	if err != nil {
		return nil, err
	}

	if len(roles) == 0 {
		return sess, nil
	}
	for _, r := range roles {
		if sess.Role == r {
			return sess, nil
		}
	}

	g.log.Debug().
		Str("role", string(sess.Role)).
		Msg("guard denied session role")
	return nil, domain.ErrRoleDenied
}

// Begin stores a freshly authenticated session under a new session ID.
func (g *Guard) Begin(ctx context.Context, sess *domain.Session) error {
	switch {
	case sess == nil || sess.Token == "":
		return fmt.Errorf("begin session: %w", domain.ErrNoSession)
	case !sess.Role.Valid():
		return fmt.Errorf("begin session: %w", domain.ErrUnknownRole)
	}
	sc, ok := FromContext(ctx)
	if !ok {
		return fmt.Errorf("begin session: %w", domain.ErrNoSession)
	}
	if err := sc.replace(ctx, sess); err != nil {
		return fmt.Errorf("begin session: %w", err)
	}
	return nil
}

// End destroys the session. Ending an absent session is not an error.
func (g *Guard) End(ctx context.Context) error {
	sc, ok := FromContext(ctx)
	if !ok {
		return nil
	}
	if err := sc.Clear(ctx); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
