package ports

import (
	"context"

	"github.com/campusjobboard/portal/internal/core/domain"
)

// AuthService is the login, registration and logout workflow.
type AuthService interface {
	// Login returns the dashboard path for the authenticated role.
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context) error
}

// AdminService is the super admin's admin-management workflow.
type AdminService interface {
	Load(ctx context.Context) (*domain.AdminDashboard, error)
	Create(ctx context.Context, admin domain.NewAdmin) error
	Delete(ctx context.Context, id string, confirmed bool) error
}

// ProfileService backs the super admin setup page.
type ProfileService interface {
	Load(ctx context.Context) (*domain.Profile, error)
	Update(ctx context.Context, p domain.Profile) error
}
