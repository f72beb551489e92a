package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/infrastructure/db/memory"
	"github.com/campusjobboard/portal/internal/session"
)

func newTestClient(t *testing.T, h http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Timeout: 2 * time.Second}, nil, zerolog.Nop()), srv
}

// sessionContext returns a context bound to a scope holding sess (nil for none).
func sessionContext(t *testing.T, sess *domain.Session) (context.Context, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	if sess != nil {
		if err := store.Save(context.Background(), "sid", sess, time.Hour); err != nil {
			t.Fatalf("save session: %v", err)
		}
	}
	sc := session.NewScope("sid", store, time.Hour, nil)
	return session.NewContext(context.Background(), sc), store
}
