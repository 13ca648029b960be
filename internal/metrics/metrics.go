package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Auth metrics

	RegistrationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kinolog",
		Name:      "registrations_total",
		Help:      "Total registration attempts, by outcome.",
	}, []string{"outcome"})

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kinolog",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	// Rating refresher metrics

	RatingRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "kinolog",
		Name:      "rating_refresh_duration_seconds",
		Help:      "Time taken for one catalog rating refresh cycle.",
		Buckets:   prometheus.DefBuckets,
	})

	RatingRefreshUpdatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "kinolog",
		Name:      "rating_refresh_updated_total",
		Help:      "Total movie ratings rewritten by the refresher.",
	})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kinolog",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kinolog",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		RegistrationsTotal,
		LoginsTotal,
		RatingRefreshDuration,
		RatingRefreshUpdatedTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// Checker is implemented by health.Checker; kept as a local interface so the
// metrics server does not depend on the health package.
type Checker interface {
	LivenessHandler() http.HandlerFunc
	ReadinessHandler() http.HandlerFunc
}

// NewServer serves /metrics plus the health probes on a separate port from
// the public API.
func NewServer(addr string, checker Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", checker.LivenessHandler())
	mux.HandleFunc("/readyz", checker.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
