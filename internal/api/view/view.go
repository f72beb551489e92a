package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/campusjobboard/portal/internal/core/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Renderer.
const (
	PageLogin               = "login"
	PageSuperAdminDashboard = "superadmin_dashboard"
	PageConfirmDelete       = "confirm_delete"
	PageSuperAdminSetup     = "superadmin_setup"
	PageDashboard           = "dashboard"
	PageError               = "error"
)

var pageNames = []string{
	PageLogin,
	PageSuperAdminDashboard,
	PageConfirmDelete,
	PageSuperAdminSetup,
	PageDashboard,
	PageError,
}

var funcs = template.FuncMap{
	// pathEscape keeps an API-supplied ID inside a single path segment.
	"pathEscape": url.PathEscape,
}

var partials = template.Must(template.New("partials.html").Funcs(funcs).ParseFS(templateFS, "templates/partials.html"))

// Renderer implements echo.Renderer over the embedded page templates.
// Every page is parsed together with the layout and the shared partials.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// RenderAdminTable writes the admin table body: one row per account with a
// delete control tagged by the account ID, or the empty-state placeholder.
func RenderAdminTable(w io.Writer, admins []domain.AdminAccount) error {
	return partials.ExecuteTemplate(w, "admin_table", admins)
}

// RenderQuota writes the "Admins: X / Y" indicator.
func RenderQuota(w io.Writer, count, max int) error {
	return partials.ExecuteTemplate(w, "admin_quota", domain.AdminQuota{Count: count, Max: max})
}

// RenderStatus writes the status line. An empty status renders hidden.
func RenderStatus(w io.Writer, status Status) error {
	return partials.ExecuteTemplate(w, "status", status)
}
