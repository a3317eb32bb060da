// Package metrics registers the Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamCallsTotal counts YouTube API calls by operation.
	UpstreamCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytfix_upstream_calls_total",
		Help: "YouTube API calls issued, by operation.",
	}, []string{"operation"})

	// QuotaUnitsTotal counts estimated YouTube API quota units consumed.
	QuotaUnitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytfix_quota_units_total",
		Help: "Estimated YouTube API quota units consumed.",
	})

	// FetchPagesTotal counts listing pages retrieved across all fetches.
	FetchPagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytfix_fetch_pages_total",
		Help: "Listing pages retrieved across all fetches.",
	})

	// DedupDroppedTotal counts duplicate entries dropped by the deduplicator.
	DedupDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ytfix_dedup_dropped_total",
		Help: "Duplicate upstream entries dropped before ranking.",
	})

	// FetchDurationSeconds observes end-to-end fetch durations.
	FetchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ytfix_fetch_duration_seconds",
		Help:    "End-to-end duration of successful channel fetches.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
	})

	// RankRequestsTotal counts ranking API requests by outcome.
	RankRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ytfix_rank_requests_total",
		Help: "Ranking requests served, by outcome.",
	}, []string{"outcome"})
)
