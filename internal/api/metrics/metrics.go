// Package metrics defines and registers all custom Prometheus metrics for
// the hour-bank portal client. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayCallsTotal counts calls issued to the remote backend.
// Labels:
//   - operation: backend operation name (e.g. "create_request")
//   - outcome: "ok", "rejected" (backend 4xx/5xx) or "error" (transport)
var GatewayCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_calls_total",
		Help:      "Total number of calls issued to the remote backend.",
	},
	[]string{"operation", "outcome"},
)

// GatewayCallDuration measures backend round-trip time per operation.
var GatewayCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of remote backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsActive tracks the number of live sessions in the in-memory store.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions.",
	},
)

// LoginsTotal counts login attempts by outcome ("ok" or "failed").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
