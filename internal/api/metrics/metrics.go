// Package metrics defines and registers all custom Prometheus metrics for the
// campus job-board portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package init
// (promauto) and exposed on /metrics by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Upstream API metrics ─────────────────────────────────────────────────────

// APIRequestsTotal counts calls made to the job-board API.
// Labels:
//   - route: the API path template (e.g. "/api/superadmin/admins/{id}")
//   - status: HTTP status code, or "error" when the transport failed
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests sent to the job-board API.",
	},
	[]string{"route", "status"},
)

// APIRequestDuration measures the latency of job-board API calls.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of job-board API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"route"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionRedirectsTotal counts forced redirects to the login page.
// Label:
//   - reason: "no_session", "expired" or "role_denied"
var SessionRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_redirects_total",
		Help:      "Total number of requests redirected to the login page.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts by outcome ("accepted", "rejected", "invalid", "error").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// ── Form metrics ─────────────────────────────────────────────────────────────

// FormValidationFailuresTotal counts submissions rejected before reaching the API.
// Label:
//   - form: "login", "register", "create_admin", "setup"
var FormValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_validation_failures_total",
		Help:      "Total number of form submissions that failed client-side validation.",
	},
	[]string{"form"},
)

// AdminQuotaUsed reports the admin count seen on the last dashboard load.
var AdminQuotaUsed = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "admin_quota_used",
		Help:      "Number of admin accounts reported on the last super admin dashboard load.",
	},
)
