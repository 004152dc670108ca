// Package metrics defines and registers all custom Prometheus metrics for
// the access-control engine. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "access_engine"

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success" or the failure kind ("authentication", "rate_limited", "storage")
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts by outcome.",
	},
	[]string{"result"},
)

// TokenValidationsTotal counts bearer-token validations on authenticated calls.
// Label:
//   - result: "success" or "failure"
var TokenValidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validations_total",
		Help:      "Total number of credential resolutions on authenticated calls, by outcome.",
	},
	[]string{"result"},
)

// RateLimitDeniedTotal counts attempts rejected by a rate limiter.
// Label:
//   - scope: which limiter denied ("auth" or "general")
var RateLimitDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_denied_total",
		Help:      "Total number of attempts denied by rate limiting, by limiter scope.",
	},
	[]string{"scope"},
)

// APIKeysIssuedTotal counts opaque API keys handed out.
var APIKeysIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_keys_issued_total",
		Help:      "Total number of API keys issued.",
	},
)
