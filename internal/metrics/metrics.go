// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmbeddingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "embedding_requests_total",
			Help: "Total number of embedding requests by outcome",
		},
		[]string{"provider", "outcome"}, // outcome: "success", "failure", "rejected"
	)

	EmbeddingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "embedding_request_duration_seconds",
			Help:    "Duration of embedding requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	ClassificationCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_cache_lookups_total",
			Help: "Classification cache lookups by entity and outcome",
		},
		[]string{"entity", "outcome"}, // outcome: "hit", "miss", "stale", "forced"
	)

	ClassificationCacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classification_cache_backend_errors_total",
			Help: "Classification cache backend failures that were absorbed",
		},
		[]string{"entity", "op"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Recommendation requests by ranking path",
		},
		[]string{"path"}, // path: "skills", "popular", "no_groups"
	)

	CatalogCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_courses",
			Help: "Number of course profiles loaded in the catalog",
		},
	)

	SentimentAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_analyses_total",
			Help: "Sentiment analyses by detected language",
		},
		[]string{"language"},
	)

	SocketMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socket_messages_total",
			Help: "Socket chat messages by result",
		},
		[]string{"result"}, // result: "stored", "invalid", "store_failed"
	)

	SocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "socket_connections",
			Help: "Currently open socket connections",
		},
	)
)

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}

// RecordEmbedding tracks one embedding call.
func RecordEmbedding(provider, outcome string, elapsed time.Duration) {
	EmbeddingRequests.WithLabelValues(provider, outcome).Inc()
	EmbeddingDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordBreakerTransition tracks a circuit breaker state change.
func RecordBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

// CacheObserver feeds classification cache outcomes for one entity kind.
type CacheObserver struct {
	Entity string
}

func (o CacheObserver) Lookup(key string, outcome string) {
	ClassificationCacheLookups.WithLabelValues(o.Entity, outcome).Inc()
}

func (o CacheObserver) BackendError(key string, op string) {
	ClassificationCacheErrors.WithLabelValues(o.Entity, op).Inc()
}
