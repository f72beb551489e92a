package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/session"
)

// RequireRole runs the session guard before the handler. A missing session
// or a role outside roles is returned as an error and the handler never
// runs; the error handler turns it into the redirect to the login page.
func RequireRole(guard *session.Guard, roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := guard.Require(c.Request().Context(), roles...)
			if err != nil {
				return err
			}

			c.Set("role", string(sess.Role))
			c.Set("full_name", sess.FullName)
			return next(c)
		}
	}
}
