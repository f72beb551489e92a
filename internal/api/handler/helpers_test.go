package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/infrastructure/db/memory"
	"github.com/campusjobboard/portal/internal/session"
)

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

// formContext builds an echo context for a form POST (or a GET when form is
// nil) bound to a session scope holding sess.
func formContext(t *testing.T, e *echo.Echo, method, target string, form url.Values, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	store := memory.NewSessionStore()
	if sess != nil {
		if err := store.Save(context.Background(), "sid", sess, time.Hour); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	sc := session.NewScope("sid", store, time.Hour, nil)
	req = req.WithContext(session.NewContext(req.Context(), sc))

	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func superAdmin() *domain.Session {
	return &domain.Session{Token: "t", Role: domain.RoleSuperAdmin, FullName: "Root User"}
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Fatalf("expected %q in body:\n%s", w, body)
		}
	}
}
