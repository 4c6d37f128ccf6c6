package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reviewscanner"

var (
	FetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "fetch_total", Help: "Reviews page fetches by outcome."},
		[]string{"outcome"}, // outcome: ok|status|transport|canceled
	)
	FetchLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "fetch_duration_seconds",
			Help:    "Reviews page fetch duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)
	ReviewsExtracted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "reviews_extracted_total", Help: "Review regions extracted."},
	)
	FieldDefaults = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "field_defaults_total", Help: "Fields replaced by their default value."},
		[]string{"field"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

var (
	registryOnce sync.Once
	registry     *prometheus.Registry
)

// Registry returns the process-wide registry with all collectors registered.
func Registry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(FetchTotal, FetchLatency, ReviewsExtracted, FieldDefaults, HTTPRequests, HTTPLatency)
	})
	return registry
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveFetch(outcome string, dur time.Duration) {
	FetchTotal.WithLabelValues(outcome).Inc()
	FetchLatency.Observe(dur.Seconds())
}

func ObserveExtracted(n int) {
	ReviewsExtracted.Add(float64(n))
}

func ObserveFieldDefault(field string) {
	FieldDefaults.WithLabelValues(field).Inc()
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}
