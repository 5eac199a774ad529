package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalsite_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "personalsite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ChatRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "personalsite_chat_requests_total",
			Help: "Total number of chat pipeline runs by outcome (grounded, fallback, error).",
		},
		[]string{"outcome"},
	)

	RetrievalFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "personalsite_retrieval_fallbacks_total",
			Help: "Total number of unfiltered retrieval retries after an empty filtered result.",
		},
	)

	ContextMatchesKept = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "personalsite_context_matches_kept",
			Help:    "Number of retrieved matches that cleared the relevance threshold.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	ChatStreamDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "personalsite_chat_stream_duration_seconds",
			Help:    "Wall time of a chat completion, first call to final fragment.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		ChatRequestsTotal,
		RetrievalFallbacksTotal,
		ContextMatchesKept,
		ChatStreamDuration,
	)
}
