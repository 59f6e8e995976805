package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business Metrics
	OperationsTotal        *prometheus.CounterVec
	GatewayCallDuration    *prometheus.HistogramVec
	ParentOverrideFailures prometheus.Counter
	AuditWriteFailures     prometheus.Counter
	EventPublishFailures   prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith registers all collectors on the given registry. Tests pass
// a fresh registry so repeated construction does not collide.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nequigateway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nequigateway_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		OperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "nequigateway_operations_total",
				Help: "Gateway operations by operation type and terminal status",
			},
			[]string{"operation", "status"},
		),
		GatewayCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "nequigateway_gateway_call_duration_seconds",
				Help:    "Duration of outbound Nequi calls in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"operation"},
		),
		ParentOverrideFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nequigateway_parent_override_failures_total",
				Help: "Failed best-effort parent status overrides",
			},
		),
		AuditWriteFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nequigateway_audit_write_failures_total",
				Help: "Transaction log writes that failed after a gateway call",
			},
		),
		EventPublishFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nequigateway_event_publish_failures_total",
				Help: "Transaction events that could not be published",
			},
		),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) RecordOperation(operation, status string) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) ObserveGatewayCall(operation string, duration time.Duration) {
	m.GatewayCallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
