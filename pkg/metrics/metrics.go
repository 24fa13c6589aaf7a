package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated registry served on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// EngineDuration. wall time of one engine call, operation is plan_routes or match_loads.
	EngineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_call_duration_seconds",
			Help:    "Engine call duration in seconds.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)
	// RouteOutcomes. per objective, found or not_found.
	RouteOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_outcomes_total", Help: "Route searches by objective and outcome."},
		[]string{"mode", "outcome"},
	)
	AcceptedSuggestions = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "consolidation_suggestions_total", Help: "Accepted consolidation suggestions."},
	)
	TripsAvoided = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "consolidation_trips_avoided_total", Help: "Trips avoided by accepted suggestions."},
	)
	RouteCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_cache_requests_total", Help: "Route plan cache lookups by result."},
		[]string{"result"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(EngineDuration)
		Registry.MustRegister(RouteOutcomes)
		Registry.MustRegister(AcceptedSuggestions)
		Registry.MustRegister(TripsAvoided)
		Registry.MustRegister(RouteCacheHits)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
