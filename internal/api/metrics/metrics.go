// Package metrics defines the custom Prometheus metrics of the photo intake
// API. Metrics are registered with the default registry on package init via
// promauto and exposed at /metrics next to the HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "photo_intake"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - type: "admin" or "client"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by login type and result.",
	},
	[]string{"type", "result"},
)

// ── Photo metrics ─────────────────────────────────────────────────────────────

// PhotosSubmittedTotal counts photos accepted into the pending queue.
var PhotosSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photos_submitted_total",
		Help:      "Total number of photos submitted.",
	},
)

// PhotoBytesSubmittedTotal sums the size of submitted photos.
var PhotoBytesSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_bytes_submitted_total",
		Help:      "Total bytes of photos written to object storage.",
	},
)

// PhotoApprovalsTotal counts approvals.
// Label:
//   - mirror: "uploaded", "failed", "skipped" or "already_mirrored"
var PhotoApprovalsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_approvals_total",
		Help:      "Total number of photo approvals, by mirror outcome.",
	},
	[]string{"mirror"},
)

// PhotoRejectionsTotal counts rejections.
var PhotoRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "photo_rejections_total",
		Help:      "Total number of photos rejected.",
	},
)

// MirrorDuration measures fetch + folder resolution + upload for one approval.
// Label:
//   - result: "uploaded" or "failed"
var MirrorDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mirror_duration_seconds",
		Help:      "Duration of mirroring an approved photo to the external store.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	},
	[]string{"result"},
)

// ── Audit event metrics ───────────────────────────────────────────────────────

// EventsQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventsErrorsTotal counts audit events that were not persisted.
// Label:
//   - reason: "dropped" (queue full or closed) or "insert_failed"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of audit events that failed to persist.",
	},
	[]string{"reason"},
)
