// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard gateway. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gateway"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionTeardownsTotal counts session teardowns.
// Label:
//   - reason: "logout", "unauthorized", "restore_failed"
var SessionTeardownsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of session teardowns, by reason.",
	},
	[]string{"reason"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts identity backend calls.
// Labels:
//   - path: the upstream path ("/login", "/profile", …)
//   - code: HTTP status code, or "0" when no response was received
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests to the identity backend, by path and status code.",
	},
	[]string{"path", "code"},
)

// ── Configurator metrics ──────────────────────────────────────────────────────

// QuotesTotal counts price computations served by the configurator.
var QuotesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Total number of configuration price quotes computed.",
	},
)

// OrdersSubmittedTotal counts configuration submissions accepted onto the queue.
var OrdersSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of configurations submitted as orders.",
	},
)

// OrdersErrorsTotal counts submissions that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var OrdersErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_errors_total",
		Help:      "Total number of order submissions that failed processing.",
	},
	[]string{"reason"},
)

// OrdersQueueDepth tracks the number of submissions waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var OrdersQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "orders_queue_depth",
		Help:      "Current number of submissions pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
