// Package apiclient talks to the job-board JSON API.
//
// Every call made on behalf of a signed-in user goes through Gateway, which
// attaches the bearer token and handles 401 centrally. AuthClient makes the
// two public calls (login, register) on the same transport.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog"

	"github.com/campusjobboard/portal/internal/api/metrics"
	"github.com/campusjobboard/portal/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 64 << 10
)

// Config captures the settings for reaching the job-board API.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the shared transport: base URL resolution, JSON bodies,
// metrics and debug logging.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a Client on a pooled transport. httpClient may be nil.
func New(cfg Config, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient.Timeout = timeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	if method == "" {
		method = http.MethodGet
	}

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		rdr = b
	case []byte:
		rdr = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	return req, nil
}

// send issues req. route labels the metrics; it is the path template so IDs
// do not blow up label cardinality.
func (c *Client) send(req *http.Request, route string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(route, "error").Inc()
		c.log.Warn().Err(err).
			Str("method", req.Method).
			Str("route", route).
			Msg("job board api unreachable")
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, route, domain.ErrUpstreamUnavailable, err)
	}

	metrics.APIRequestsTotal.WithLabelValues(route, strconv.Itoa(resp.StatusCode)).Inc()
	c.log.Debug().
		Str("method", req.Method).
		Str("route", route).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("job board api call")
	return resp, nil
}

// IsSuccess reports whether resp carries a 2xx status.
func IsSuccess(resp *http.Response) bool {
	return resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ReadAPIError consumes and closes resp's body and interprets it as an API error.
func ReadAPIError(resp *http.Response) *domain.APIError {
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return domain.ParseAPIError(resp.StatusCode, body)
}

// checkStatus consumes resp. A non-2xx status is returned as *domain.APIError.
func checkStatus(resp *http.Response) error {
	if !IsSuccess(resp) {
		return ReadAPIError(resp)
	}
	discard(resp)
	return nil
}

// discard drains and closes the body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
}
