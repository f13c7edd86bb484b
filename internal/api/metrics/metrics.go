// Package metrics defines and registers all custom Prometheus metrics for the
// PinTunes API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pintunes"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - action: "signup" or "login"
//   - result: "ok", "invalid", "not_found", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup/login attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Feed metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts published posts.
// Label:
//   - with_image: "true" when an image was pinned alongside the post
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts pinned to the store.",
	},
	[]string{"with_image"},
)

// PostsSkippedTotal counts list entries dropped because their payload could
// not be fetched or parsed.
// Label:
//   - reason: "fetch_failed" or "parse_failed"
var PostsSkippedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_skipped_total",
		Help:      "Total number of stored posts skipped during listing.",
	},
	[]string{"reason"},
)

// ── Assistant metrics ─────────────────────────────────────────────────────────

// AssistantRequestsTotal counts assistant conversations.
// Label:
//   - result: "ok", "degraded", "config_error"
var AssistantRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assistant_requests_total",
		Help:      "Total number of assistant conversation requests, by result.",
	},
	[]string{"result"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreRequestDuration measures latency of calls to the pinning gateway.
// Labels:
//   - operation: "pin_json", "pin_file", "fetch", "list", "test_auth"
//   - result: "ok" or "error"
var StoreRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "store_request_duration_seconds",
		Help:      "Duration of pinning-gateway requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation", "result"},
)
