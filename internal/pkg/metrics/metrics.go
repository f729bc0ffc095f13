package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the HTTP collectors exposed at /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func New(service string) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "Total number of HTTP requests.",
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request latency in seconds.",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: prometheus.Labels{"service": service},
			},
			[]string{"method", "path"},
		),
	}
	prometheus.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}
