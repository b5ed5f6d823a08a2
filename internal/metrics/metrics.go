package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	InvoicesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoices_created_total",
			Help: "Invoices created, by initial status.",
		},
		[]string{"status"},
	)

	InvoiceTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_status_transitions_total",
			Help: "Invoice status changes.",
		},
		[]string{"from", "to"},
	)

	TasksCleared = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tasks_cleared_total",
			Help: "Done tasks removed by complete-day.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		InvoicesCreated,
		InvoiceTransitions,
		TasksCleared,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one served request. route is the matched route
// pattern, not the raw path, so ids do not explode label cardinality.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordInvoiceCreated(status string) {
	InvoicesCreated.WithLabelValues(status).Inc()
}

func RecordInvoiceTransition(from, to string) {
	InvoiceTransitions.WithLabelValues(from, to).Inc()
}

func RecordTasksCleared(n int) {
	TasksCleared.Add(float64(n))
}
