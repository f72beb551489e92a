package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/campusjobboard/portal/internal/core/ports"
	"github.com/campusjobboard/portal/internal/session"
)

// SessionCookie carries the browser's session ID.
const SessionCookie = "portal_session"

type SessionConfig struct {
	Skipper echomiddleware.Skipper
	Store   ports.SessionStore
	TTL     time.Duration
	Secure  bool
}

// Session binds the browser's session.Scope into the request context. A
// missing or malformed cookie gets a fresh ID, and the cookie follows the
// scope whenever it rotates the ID on login.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper != nil && cfg.Skipper(c) {
				return next(c)
			}

			id := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				id = ck.Value
			}
			if _, err := uuid.Parse(id); err != nil {
				id = session.NewID()
				setSessionCookie(c, id, cfg.Secure)
			}

			sc := session.NewScope(id, cfg.Store, cfg.TTL, func(newID string) {
				setSessionCookie(c, newID, cfg.Secure)
			})

			req := c.Request()
			c.SetRequest(req.WithContext(session.NewContext(req.Context(), sc)))
			return next(c)
		}
	}
}

func setSessionCookie(c echo.Context, id string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
