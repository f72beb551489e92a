package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/handler"
	"github.com/campusjobboard/portal/internal/api/middleware"
	"github.com/campusjobboard/portal/internal/api/view"
	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/core/service"
	"github.com/campusjobboard/portal/internal/infrastructure/apiclient"
	"github.com/campusjobboard/portal/internal/infrastructure/db/memory"
	"github.com/campusjobboard/portal/internal/session"
)

// jobBoardAPI is a stand-in for the remote job-board API.
type jobBoardAPI struct {
	deletes atomic.Int32
}

func (a *jobBoardAPI) handler() http.Handler {
	accounts := map[string]map[string]string{
		"u@x.com":     {"token": "t", "role": "STUDENT", "fullName": "U"},
		"root@x.com":  {"token": "st", "role": "SUPER_ADMIN", "fullName": "Root User"},
		"stale@x.com": {"token": "stale", "role": "SUPER_ADMIN", "fullName": "Stale User"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&creds)
		acct, ok := accounts[creds.Email]
		if !ok || creds.Password != "Secret1!" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Bad credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(acct)
	})

	superAdminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer st" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next(w, r)
		}
	}
	mux.HandleFunc("GET /api/superadmin/admins", superAdminOnly(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"userId":1,"fullName":"Alice Admin","email":"alice@x.com"}]`))
	}))
	mux.HandleFunc("GET /api/superadmin/admin-count", superAdminOnly(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`1`))
	}))
	mux.HandleFunc("DELETE /api/superadmin/admins/{id}", superAdminOnly(func(w http.ResponseWriter, r *http.Request) {
		a.deletes.Add(1)
		w.WriteHeader(http.StatusNoContent)
	}))
	return mux
}

// browser replays cookies between requests like a real client.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, ck := range b.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		b.cookies[ck.Name] = ck
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	if ck, ok := b.cookies["_csrf"]; ok {
		form.Set("csrf_token", ck.Value)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

func (b *browser) login(email string) {
	b.t.Helper()
	b.get("/login")
	rec := b.post("/login", url.Values{"email": {email}, "password": {"Secret1!"}})
	if rec.Code != http.StatusSeeOther {
		b.t.Fatalf("login %s: expected 303, got %d", email, rec.Code)
	}
}

func newPortal(t *testing.T) (*browser, *memory.SessionStore, *jobBoardAPI) {
	t.Helper()

	stub := &jobBoardAPI{}
	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	store := memory.NewSessionStore()
	lock := memory.NewSubmitLock()
	client := apiclient.New(apiclient.Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, log)
	gw := apiclient.NewGateway(client)
	guard := session.NewGuard(log)

	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	reg := prometheus.NewRegistry()

	e := NewRouter(Deps{
		Log:            log,
		Renderer:       renderer,
		Sessions:       store,
		SessionTTL:     time.Hour,
		Guard:          guard,
		AuthService:    service.NewAuthService(apiclient.NewAuthClient(client), guard, lock, time.Second, log),
		AdminService:   service.NewAdminService(apiclient.NewDirectoryClient(gw, log), lock, time.Second, log),
		ProfileService: service.NewProfileService(apiclient.NewProfileClient(gw), lock, time.Second, log),
		Health:         map[string]handler.Pinger{"session_store": store},
		Registerer:     reg,
		Gatherer:       reg,
	})

	return &browser{t: t, e: e, cookies: map[string]*http.Cookie{}}, store, stub
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != want {
		t.Fatalf("expected redirect to %q, got %q", want, loc)
	}
}

func TestPortal_RootRedirectsToLogin(t *testing.T) {
	b, _, _ := newPortal(t)
	assertRedirect(t, b.get("/"), domain.PathLogin)
}

func TestPortal_LoginStoresSessionAndNavigates(t *testing.T) {
	b, store, _ := newPortal(t)

	b.get("/login")
	rec := b.post("/login", url.Values{"email": {"u@x.com"}, "password": {"Secret1!"}})
	assertRedirect(t, rec, domain.PathStudentDashboard)

	ck, ok := b.cookies[middleware.SessionCookie]
	if !ok {
		t.Fatalf("expected session cookie")
	}
	sess, err := store.Load(context.Background(), ck.Value)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.Token != "t" || sess.Role != domain.RoleStudent || sess.FullName != "U" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	rec = b.get(domain.PathStudentDashboard)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Welcome back, U.") {
		t.Fatalf("dashboard missing full name: %s", rec.Body.String())
	}
}

func TestPortal_LoginRejected(t *testing.T) {
	b, store, _ := newPortal(t)

	b.get("/login")
	rec := b.post("/login", url.Values{"email": {"u@x.com"}, "password": {"Wrong1!!"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password.") {
		t.Fatalf("missing login error")
	}
	if store.Len() != 0 {
		t.Fatalf("rejected login must not store a session")
	}
}

func TestPortal_GuardRedirects(t *testing.T) {
	b, _, _ := newPortal(t)

	// No session at all.
	assertRedirect(t, b.get(domain.PathSuperAdminDashboard), domain.PathLogin)
	assertRedirect(t, b.get(domain.PathStudentDashboard), domain.PathLogin)

	// Signed in with the wrong role.
	b.login("u@x.com")
	assertRedirect(t, b.get(domain.PathSuperAdminDashboard), domain.PathLogin)
	assertRedirect(t, b.get(domain.PathEmployerDashboard), domain.PathLogin)
}

func TestPortal_DeleteRequiresConfirmation(t *testing.T) {
	b, _, api := newPortal(t)
	b.login("root@x.com")

	rec := b.get(domain.PathSuperAdminDashboard)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Alice Admin") || !strings.Contains(rec.Body.String(), "Admins: 1 / 3") {
		t.Fatalf("dashboard not rendered: %s", rec.Body.String())
	}

	rec = b.get("/superadmin/admins/1/delete")
	if !strings.Contains(rec.Body.String(), "Delete this admin?") {
		t.Fatalf("confirmation page missing")
	}

	assertRedirect(t, b.post("/superadmin/admins/1/delete", url.Values{"confirm": {"no"}}), domain.PathSuperAdminDashboard)
	if api.deletes.Load() != 0 {
		t.Fatalf("declined confirmation sent a DELETE")
	}

	rec = b.post("/superadmin/admins/1/delete", url.Values{"confirm": {"yes"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Admin deleted successfully.") {
		t.Fatalf("missing success status")
	}
	if api.deletes.Load() != 1 {
		t.Fatalf("expected one DELETE, got %d", api.deletes.Load())
	}
}

func TestPortal_RejectedTokenClearsSession(t *testing.T) {
	b, store, _ := newPortal(t)
	b.login("stale@x.com")
	id := b.cookies[middleware.SessionCookie].Value

	assertRedirect(t, b.get(domain.PathSuperAdminDashboard), domain.PathLogin)

	if _, err := store.Load(context.Background(), id); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected session to be cleared, got %v", err)
	}
}

func TestPortal_Logout(t *testing.T) {
	b, _, _ := newPortal(t)
	b.login("u@x.com")

	assertRedirect(t, b.post("/logout", url.Values{}), domain.PathLogin)
	assertRedirect(t, b.get(domain.PathStudentDashboard), domain.PathLogin)
}

func TestPortal_PostWithoutCSRFTokenIsRejected(t *testing.T) {
	b, store, _ := newPortal(t)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=u%40x.com&password=Secret1%21"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := b.do(req)

	if rec.Code < 400 {
		t.Fatalf("expected CSRF rejection, got %d", rec.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("no session should be stored")
	}
}

func TestPortal_Probes(t *testing.T) {
	b, _, _ := newPortal(t)

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := b.get(path); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
	if _, ok := b.cookies[middleware.SessionCookie]; ok {
		t.Fatalf("probes must not start a session")
	}
}

func TestPortal_GuardRedirectsAreCountedAs303(t *testing.T) {
	b, _, _ := newPortal(t)

	assertRedirect(t, b.get(domain.PathSuperAdminDashboard), domain.PathLogin)
	b.login("u@x.com")
	assertRedirect(t, b.get(domain.PathSuperAdminDashboard), domain.PathLogin)

	body := b.get("/metrics").Body.String()
	want := `portal_requests_total{code="303",method="GET",url="/superadmin/dashboard"} 2`
	if !strings.Contains(body, want) {
		t.Fatalf("expected %s in metrics:\n%s", want, body)
	}
	if strings.Contains(body, `code="500",method="GET",url="/superadmin/dashboard"`) {
		t.Fatalf("guard redirects must not be counted as 500")
	}
}
