package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/campusjobboard/portal/internal/api/metrics"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/ports"
)

// AdminService runs the super admin's admin-management workflow.
type AdminService struct {
	dir    ports.AdminDirectory
	submit submitGuard
	log    zerolog.Logger
}

func NewAdminService(dir ports.AdminDirectory, lock ports.SubmitLock, lockTTL time.Duration, log zerolog.Logger) *AdminService {
	return &AdminService{
		dir:    dir,
		submit: newSubmitGuard(lock, lockTTL),
		log:    log,
	}
}

// Load fetches the admin list and the admin count concurrently. Only
// session errors fail the load; upstream trouble degrades to empty values.
func (s *AdminService) Load(ctx context.Context) (*domain.AdminDashboard, error) {
	var (
		admins []domain.AdminAccount
		count  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		admins, err = s.dir.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.dir.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.AdminQuotaUsed.Set(float64(count))
	return &domain.AdminDashboard{Admins: admins, Quota: domain.NewAdminQuota(count)}, nil
}

// Create provisions an admin account. A rejection is returned as
// *domain.APIError.
func (s *AdminService) Create(ctx context.Context, admin domain.NewAdmin) error {
	return s.submit.run(ctx, "create_admin", func() error {
		if err := s.dir.Create(ctx, admin); err != nil {
			return err
		}

		s.log.Info().Str("email", admin.Email).Msg("admin account created")
		return nil
	})
}

// Delete removes an admin account. Unless confirmed is true no request is
// made and domain.ErrDeleteNotConfirmed is returned.
func (s *AdminService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return domain.ErrDeleteNotConfirmed
	}

	return s.submit.run(ctx, "delete_admin", func() error {
		if err := s.dir.Delete(ctx, id); err != nil {
			return err
		}

		s.log.Info().Str("admin_id", id).Msg("admin account deleted")
		return nil
	})
}
