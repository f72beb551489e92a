package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusjobboard/portal/internal/api/view"
)

// RoleDashboard renders the landing page of a student, employer or admin.
// The route's role guard has already admitted the session.
func RoleDashboard(heading string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, view.PageDashboard, view.DashboardPage{
			Page:    page(c, heading),
			Heading: heading,
		})
	}
}
