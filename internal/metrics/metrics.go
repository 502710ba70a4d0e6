// Package metrics holds the Prometheus collectors for the HTTP API and the
// recommendation pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pm_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pm_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pm_api_active_requests",
			Help: "Requests currently being served",
		},
	)

	// Recommendation metrics
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pm_recommendation_duration_seconds",
			Help:    "Time to score and rank the library for one request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	PrimaryZoneTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pm_profile_primary_zone_total",
			Help: "Profiles generated, by primary zone",
		},
		[]string{"zone"},
	)

	ResultCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pm_result_cache_hits_total",
			Help: "Recommendation requests answered from cache",
		},
	)

	ResultCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pm_result_cache_misses_total",
			Help: "Recommendation requests computed from scratch",
		},
	)

	// Library metrics
	LibraryEpisodes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pm_library_episodes",
			Help: "Episodes in the loaded library",
		},
		[]string{"kind"}, // "catalog", "curated"
	)

	LibraryQuotes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pm_library_quotes",
			Help: "Verified quotes in the loaded library",
		},
	)
)

// RecordAPIRequest records one finished request.
func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one pipeline run.
func RecordRecommendation(primaryZone string, duration time.Duration) {
	RecommendationDuration.Observe(duration.Seconds())
	PrimaryZoneTotal.WithLabelValues(primaryZone).Inc()
}

// RecordCache records a result-cache lookup.
func RecordCache(hit bool) {
	if hit {
		ResultCacheHits.Inc()
	} else {
		ResultCacheMisses.Inc()
	}
}

// SetLibrarySize publishes the loaded library's size.
func SetLibrarySize(episodes, curated, quotes int) {
	LibraryEpisodes.WithLabelValues("catalog").Set(float64(episodes))
	LibraryEpisodes.WithLabelValues("curated").Set(float64(curated))
	LibraryQuotes.Set(float64(quotes))
}
