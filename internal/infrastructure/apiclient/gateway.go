package apiclient

import (
	"context"
	"net/http"

	"github.com/campusjobboard/portal/internal/core/domain"
	"github.com/campusjobboard/portal/internal/session"
)

// RequestOptions customises a Gateway call.
type RequestOptions struct {
	Method string
	// Body is sent as-is when it is an io.Reader or []byte, JSON-encoded otherwise.
	Body   any
	Header http.Header
	// Route labels metrics; defaults to the request path.
	Route string
}

// Gateway is the single path for authorised calls to the job-board API.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

// Do sends an authorised request for the session bound to ctx.
//
// With no session it returns domain.ErrNoSession without touching the
// network. On 401 it clears the session and returns domain.ErrSessionExpired.
// Both mean "go to the login page" and come with a nil response. Any other
// status is returned untouched for the caller to interpret.
func (g *Gateway) Do(ctx context.Context, path string, opts RequestOptions) (*http.Response, error) {
	sc, ok := session.FromContext(ctx)
	if !ok {
		return nil, domain.ErrNoSession
	}
	token, err := sc.Token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := g.client.newRequest(ctx, opts.Method, path, opts.Body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, values := range opts.Header {
		if http.CanonicalHeaderKey(key) == "Authorization" {
			continue
		}
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)

	route := opts.Route
	if route == "" {
		route = path
	}
	resp, err := g.client.send(req, route)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)
		if err := sc.Clear(ctx); err != nil {
			g.client.log.Error().Err(err).Msg("failed to clear expired session")
		}
		return nil, domain.ErrSessionExpired
	}
	return resp, nil
}
