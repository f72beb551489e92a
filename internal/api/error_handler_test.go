package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	tests := []struct {
		name     string
		err      error
		status   int
		location string
		body     string
	}{
		{"no session", domain.ErrNoSession, http.StatusSeeOther, domain.PathLogin, ""},
		{"expired", fmt.Errorf("list admins: %w", domain.ErrSessionExpired), http.StatusSeeOther, domain.PathLogin, ""},
		{"role denied", domain.ErrRoleDenied, http.StatusSeeOther, domain.PathLogin, ""},
		{"echo error", echo.NewHTTPError(http.StatusNotFound, "Not Found"), http.StatusNotFound, "", "Not Found"},
		{"upstream", domain.ErrUpstreamUnavailable, http.StatusBadGateway, "", "Network error. Please try again."},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "", "Something went wrong. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Renderer = renderer
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/superadmin/dashboard", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Fatalf("expected location %q, got %q", tt.location, loc)
			}
			if tt.body != "" && !strings.Contains(rec.Body.String(), tt.body) {
				t.Fatalf("expected %q in body: %s", tt.body, rec.Body.String())
			}
			if strings.Contains(rec.Body.String(), "boom") {
				t.Fatalf("internal error leaked to the client")
			}
		})
	}
}

func TestHTTPErrorHandler_FallsBackWithoutRenderer(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("boom"), c)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Something went wrong") {
		t.Fatalf("expected plain text fallback, got %s", rec.Body.String())
	}
}
