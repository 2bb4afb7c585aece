// Mirrarr - Sonarr/Radarr Webhook Relay and Library Sync
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mirrarr

// Package metrics provides Prometheus instrumentation for Mirrarr:
// webhook throughput, per-target sync outcomes, media server scan outcomes,
// vendor API latency, and circuit breaker state.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook metrics
	WebhooksReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirrarr_webhooks_received_total",
			Help: "Total number of webhooks received, by event type and media kind",
		},
		[]string{"event_type", "kind"},
	)

	WebhooksRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirrarr_webhooks_rejected_total",
			Help: "Total number of webhooks rejected before any target work",
		},
		[]string{"reason"}, // "malformed_payload", "unknown_source"
	)

	WebhookDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "mirrarr_webhook_duration_seconds",
			Help: "End-to-end webhook handling duration including pacing sleeps",
			// Pacing sleeps dominate; extend buckets well past DefBuckets.
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// Sync orchestration metrics
	SyncOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirrarr_sync_outcomes_total",
			Help: "Per-target synchronization outcomes",
		},
		[]string{"target", "status"}, // status: added, already-exists, skipped, error
	)

	// Media server scan metrics
	ScanOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirrarr_scan_outcomes_total",
			Help: "Per-server media library scan outcomes",
		},
		[]string{"server", "server_type", "status"},
	)

	// Vendor API metrics
	VendorRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirrarr_vendor_request_duration_seconds",
			Help:    "Duration of vendor API calls (Sonarr/Radarr/Plex/Jellyfin/Emby)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"vendor", "operation"},
	)

	VendorRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirrarr_vendor_request_errors_total",
			Help: "Total number of failed vendor API calls",
		},
		[]string{"vendor", "operation"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mirrarr_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mirrarr_circuit_breaker_consecutive_failures",
			Help: "Consecutive failures recorded by a circuit breaker",
		},
		[]string{"breaker"},
	)

	// HTTP metrics (used by middleware)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mirrarr_http_request_duration_seconds",
			Help:    "HTTP request latency by path and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mirrarr_http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// ObserveVendorRequest records the duration and error state of a vendor call.
func ObserveVendorRequest(vendor, operation string, start time.Time, err error) {
	VendorRequestDuration.WithLabelValues(vendor, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		VendorRequestErrors.WithLabelValues(vendor, operation).Inc()
	}
}

// ObserveHTTPRequest records a completed HTTP request.
func ObserveHTTPRequest(path, method string, status int, start time.Time) {
	HTTPRequestDuration.WithLabelValues(path, method, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
