// Copyright 2025, the gramrelay contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package metrics exposes Prometheus instrumentation for the relay.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values for the result label of fetch attempts.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	fetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gramrelay_fetch_attempts_total",
			Help: "Total number of upstream fetch attempts, labeled by strategy and result.",
		},
		[]string{"strategy", "result"},
	)

	fetchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gramrelay_fetch_duration_seconds",
			Help:    "Histogram of upstream fetch attempt latencies, labeled by strategy.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25},
		},
		[]string{"strategy"},
	)

	relayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gramrelay_relay_requests_total",
			Help: "Total number of relay requests served, labeled by outcome.",
		},
		[]string{"outcome"},
	)
)

// Handler returns the standard Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveFetchAttempt records one upstream attempt.
func ObserveFetchAttempt(strategy, result string, duration time.Duration) {
	fetchAttemptsTotal.WithLabelValues(strategy, result).Inc()
	fetchDurationSeconds.WithLabelValues(strategy).Observe(duration.Seconds())
}

// ObserveRelayRequest records the outcome of one relay request.
func ObserveRelayRequest(outcome string) {
	relayRequestsTotal.WithLabelValues(outcome).Inc()
}
