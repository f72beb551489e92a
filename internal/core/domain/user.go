package domain

// Role is the permission tier the job-board API assigns to an account.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleEmployer   Role = "EMPLOYER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Portal routes.
const (
	PathLogin               = "/login"
	PathStudentDashboard    = "/student/dashboard"
	PathEmployerDashboard   = "/employer/dashboard"
	PathAdminDashboard      = "/admin/dashboard"
	PathSuperAdminDashboard = "/superadmin/dashboard"
	PathSuperAdminSetup     = "/superadmin/setup"
)

var dashboards = map[Role]string{
	RoleStudent:    PathStudentDashboard,
	RoleEmployer:   PathEmployerDashboard,
	RoleAdmin:      PathAdminDashboard,
	RoleSuperAdmin: PathSuperAdminDashboard,
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := dashboards[r]
	return ok
}

// Dashboard returns the landing page for r. ok is false for unknown roles.
func (r Role) Dashboard() (path string, ok bool) {
	path, ok = dashboards[r]
	return path, ok
}

// SelfRegistrable reports whether accounts with this role may sign up on
// their own. Admin accounts are provisioned by the super admin.
func (r Role) SelfRegistrable() bool {
	return r == RoleStudent || r == RoleEmployer
}

// Session is the credential set held for one browser session.
type Session struct {
	Token    string `json:"token"     bson:"token"`
	Role     Role   `json:"role"      bson:"role"`
	FullName string `json:"fullName"  bson:"full_name"`
}

// Valid reports whether the session is usable. Token and role are set
// together or the session counts as absent.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.Role.Valid()
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the self sign-up payload.
type Registration struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// Profile is the super admin's editable account data.
type Profile struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
