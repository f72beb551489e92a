package ports

import (
	"context"

	"github.com/campusjobboard/portal/internal/core/domain"
)

// AuthAPI performs the unauthenticated calls of the job-board API.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// AdminDirectory manages admin accounts on behalf of the super admin.
// List and Count degrade to empty values on upstream failure; only
// session errors are returned. Create and Delete return a rejection as
// *domain.APIError.
type AdminDirectory interface {
	List(ctx context.Context) ([]domain.AdminAccount, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, admin domain.NewAdmin) error
	Delete(ctx context.Context, id string) error
}

// ProfileAPI reads and updates the super admin's own profile.
type ProfileAPI interface {
	Get(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, p domain.Profile) error
}
