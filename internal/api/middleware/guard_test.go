package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/infrastructure/db/memory"
	"github.com/campusjobboard/portal/internal/session"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func guardedContext(t *testing.T, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewSessionStore()
	if sess != nil {
		if err := store.Save(ctx, "sid", sess, time.Hour); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(session.NewContext(ctx, session.NewScope("sid", store, time.Hour, nil)))
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireRole_Allows(t *testing.T) {
	c, rec := guardedContext(t, &domain.Session{Token: "t", Role: domain.RoleSuperAdmin, FullName: "Root"})

	called := false
	mw := RequireRole(session.NewGuard(testLogger()), domain.RoleSuperAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get("role") != "SUPER_ADMIN" {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_Denies(t *testing.T) {
	tests := []struct {
		name string
		sess *domain.Session
		want error
	}{
		{"no session", nil, domain.ErrNoSession},
		{"wrong role", &domain.Session{Token: "t", Role: domain.RoleStudent}, domain.ErrRoleDenied},
		{"token without role", &domain.Session{Token: "t"}, domain.ErrNoSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := guardedContext(t, tt.sess)

			mw := RequireRole(session.NewGuard(testLogger()), domain.RoleSuperAdmin)
			handler := mw(func(c echo.Context) error {
				t.Fatalf("should not reach next handler")
				return nil
			})

			if err := handler(c); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
