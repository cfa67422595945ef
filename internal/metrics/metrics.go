package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Catalog metrics

	CatalogFetchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "catalog_fetch_duration_seconds",
		Help:      "Duration of upstream catalog fetches, by scope.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"scope"})

	CatalogFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "catalog_fetches_total",
		Help:      "Total catalog fetches, by scope and outcome.",
	}, []string{"scope", "outcome"})

	CatalogStaleDropsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "catalog_stale_responses_dropped_total",
		Help:      "Fetch completions discarded because a newer fetch for the scope was already issued.",
	})

	// Cart metrics

	CartOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cart_operations_total",
		Help:      "Total cart state transitions, by operation.",
	}, []string{"op"})

	// Auth metrics

	AuthAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "auth_attempts_total",
		Help:      "Register/login/logout attempts, by outcome.",
	}, []string{"op", "outcome"})

	// Alert metrics

	AlertsShownTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "alerts_shown_total",
		Help:      "Alerts raised, by kind.",
	}, []string{"kind"})

	// Contact relay

	ContactMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "contact_messages_total",
		Help:      "Contact form relays, by outcome.",
	}, []string{"outcome"})

	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})
)

func Register() {
	prometheus.MustRegister(
		CatalogFetchDuration,
		CatalogFetchesTotal,
		CatalogStaleDropsTotal,
		CartOperationsTotal,
		AuthAttemptsTotal,
		AlertsShownTotal,
		ContactMessagesTotal,
		HTTPRequestDuration,
		HTTPRequestsTotal,
	)
}

// healthHandlers is the subset of health.Checker the server needs.
type healthHandlers interface {
	LivenessHandler() http.HandlerFunc
	ReadinessHandler() http.HandlerFunc
}

// NewServer serves /metrics plus the health endpoints on its own port.
func NewServer(addr string, checker healthHandlers) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", checker.LivenessHandler())
	mux.HandleFunc("/readyz", checker.ReadinessHandler())
	return &http.Server{Addr: addr, Handler: mux}
}
