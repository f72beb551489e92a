package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/metrics"
	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	msgInternal     = "Something went wrong. Please try again."
	msgNetworkError = "Network error. Please try again."
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends the browser to the login page for missing, expired or
//     unauthorised sessions.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders every other error as the error page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if domain.RequiresLogin(err) {
			metrics.SessionRedirectsTotal.WithLabelValues(redirectReason(err)).Inc()
			_ = c.Redirect(http.StatusSeeOther, domain.PathLogin)
			return
		}

		code, msg := resolveError(err, log, c)
		page := view.ErrorPage{
			Page:    view.Page{Title: http.StatusText(code)},
			Code:    code,
			Message: msg,
		}
		if rerr := c.Render(code, view.PageError, page); rerr != nil {
			_ = c.String(code, msg)
		}
	}
}

func redirectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return "expired"
	case errors.Is(err, domain.ErrRoleDenied):
		return "role_denied"
	default:
		return "no_session"
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, CSRF, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	if errors.Is(err, domain.ErrUpstreamUnavailable) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("job board api unavailable")
		return http.StatusBadGateway, msgNetworkError
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, msgInternal
}
