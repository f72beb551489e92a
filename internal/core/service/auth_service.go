package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/metrics"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

// AuthService implements login, self registration and logout.
type AuthService struct {
	api    ports.AuthAPI
	guard  ports.SessionGuard
	submit submitGuard
	log    zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, guard ports.SessionGuard, lock ports.SubmitLock, lockTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		api:    api,
		guard:  guard,
		submit: newSubmitGuard(lock, lockTTL),
		log:    log,
	}
}

// Login authenticates against the API, stores the session and returns the
// dashboard path for the session's role. A role the portal does not know is
// logged and reported as domain.ErrUnknownRole without storing anything.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	sess, err := s.api.Login(ctx, creds)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return "", err
	}

	dest, ok := sess.Role.Dashboard()
	if !ok {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.Error().
			Str("role", string(sess.Role)).
			Msg("unknown role received from job board api")
		return "", domain.ErrUnknownRole
	}

	if err := s.guard.Begin(ctx, sess); err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("accepted").Inc()
	return dest, nil
}

func loginOutcome(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "rejected"
	}
	return "error"
}

// Register creates a student or employer account. The server's field
// errors come back as *domain.APIError.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	return s.submit.run(ctx, "register", func() error {
		return s.api.Register(ctx, reg)
	})
}

// Logout ends the current session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.guard.End(ctx)
}
