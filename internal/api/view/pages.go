package view

import "github.com/campusjobboard/portal/internal/core/domain"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Status is the one-line outcome message shown above a form.
type Status struct {
	Text     string
	Severity Severity
}

func Success(text string) Status { return Status{Text: text, Severity: SeveritySuccess} }

func Failure(text string) Status { return Status{Text: text, Severity: SeverityError} }

func (s Status) Class() string {
	if s.Severity == SeveritySuccess {
		return "text-green-600"
	}
	return "text-red-600"
}

// Page carries what the layout needs on every page.
type Page struct {
	Title     string
	CSRFToken string
	User      *domain.Session
	// RefreshTo, when set, sends the browser there shortly after the page
	// is shown.
	RefreshTo string
}

type LoginForm struct {
	Email string
}

type RegisterForm struct {
	FullName string
	Email    string
	Role     string
}

type LoginPage struct {
	Page
	Tab            string
	Login          LoginForm
	LoginErrors    domain.FieldErrors
	LoginError     string
	Register       RegisterForm
	RegisterErrors domain.FieldErrors
	RegisterError  string
	Registered     bool
}

type AdminForm struct {
	FullName string
	Email    string
}

type SuperAdminPage struct {
	Page
	Admins []domain.AdminAccount
	Quota  domain.AdminQuota
	Form   AdminForm
	Errors domain.FieldErrors
	Status Status
}

type ConfirmDeletePage struct {
	Page
	AdminID string
}

type SetupPage struct {
	Page
	Profile domain.Profile
	Errors  domain.FieldErrors
	Status  Status
}

type DashboardPage struct {
	Page
	Heading string
}

type ErrorPage struct {
	Page
	Code    int
	Message string
}
