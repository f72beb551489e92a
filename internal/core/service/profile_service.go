package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

// ProfileService backs the super admin setup page.
type ProfileService struct {
	api    ports.ProfileAPI
	submit submitGuard
	log    zerolog.Logger
}

func NewProfileService(api ports.ProfileAPI, lock ports.SubmitLock, lockTTL time.Duration, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		api:    api,
		submit: newSubmitGuard(lock, lockTTL),
		log:    log,
	}
}

// Load returns the current profile for pre-filling the form. When the API
// cannot answer the form starts empty; session errors are returned.
func (s *ProfileService) Load(ctx context.Context) (*domain.Profile, error) {
	p, err := s.api.Get(ctx)
	if err != nil {
		if domain.RequiresLogin(err) {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("failed to load profile")
		return &domain.Profile{}, nil
	}
	p.Password = ""
	return p, nil
}

// Update saves the profile. A rejection is returned as *domain.APIError.
func (s *ProfileService) Update(ctx context.Context, p domain.Profile) error {
	return s.submit.run(ctx, "update_profile", func() error {
		return s.api.Update(ctx, p)
	})
}
