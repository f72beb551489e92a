package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campusjobboard/portal/internal/api/metrics"
	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/session"
)

// CSRFContextKey is where the CSRF middleware leaves the request's token.
const CSRFContextKey = "csrf"

const (
	msgInProgress   = "A request is already in progress."
	msgNetworkError = "Network error. Please try again."
)

// page builds the layout data shared by every page: the CSRF token and,
// when the browser is signed in, its session.
func page(c echo.Context, title string) view.Page {
	p := view.Page{Title: title}
	p.CSRFToken, _ = c.Get(CSRFContextKey).(string)

	ctx := c.Request().Context()
	if sc, ok := session.FromContext(ctx); ok {
		if sess, err := sc.Current(ctx); err == nil {
			p.User = sess
		}
	}
	return p
}

// validateForm runs the echo validator over form. Field failures are
// returned as domain.FieldErrors and counted per form; any other error is
// a programming error and is returned as such.
func validateForm(c echo.Context, name string, form any) (domain.FieldErrors, error) {
	err := c.Validate(form)
	if err == nil {
		return nil, nil
	}
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		metrics.FormValidationFailuresTotal.WithLabelValues(name).Inc()
		return fe, nil
	}
	return nil, err
}

// submitFailure classifies a failed submission for rendering: the status
// code, the server's field errors and the general message. fallback is used
// when the server rejected the request without saying why. ok is false for
// errors the page cannot show, which the caller returns to echo.
func submitFailure(err error, fallback string) (status int, fields domain.FieldErrors, msg string, ok bool) {
	var apiErr *domain.APIError
	switch {
	case domain.RequiresLogin(err):
		return 0, nil, "", false
	case errors.As(err, &apiErr):
		status = apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		msg = apiErr.Message
		if msg == "" {
			msg = fallback
		}
		return status, apiErr.Fields, msg, true
	case errors.Is(err, domain.ErrSubmitInProgress):
		return http.StatusConflict, nil, msgInProgress, true
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, nil, msgNetworkError, true
	}
	return 0, nil, "", false
}
