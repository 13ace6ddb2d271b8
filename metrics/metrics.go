// Copyright (c) 2026 KQ Awards.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Vote submission outcomes
const (
	OutcomeAccepted  = "accepted"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
	OutcomeRevealed  = "revealed"
	OutcomeGated     = "gated"
)

var (
	// VotesSubmitted counts POST /vote outcomes.
	VotesSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kq_votes_submitted_total",
		Help: "Total vote submissions by outcome",
	}, []string{"outcome"})

	// ResultsRequests counts GET /results outcomes.
	ResultsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kq_results_requests_total",
		Help: "Total results requests by outcome",
	}, []string{"outcome"})

	// RequestDuration observes handler latency per route pattern.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kq_http_request_duration_seconds",
		Help:    "HTTP request duration by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
