package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded by Metrics.
const (
	outcomeOK              = "ok"
	outcomeInvalidRequest  = "invalid_request"
	outcomeTransportError  = "transport_error"
	outcomeHTTPError       = "http_error"
	outcomeInvalidResponse = "invalid_response"
	outcomeRejected        = "signature_rejected"
)

// Metrics holds Prometheus collectors for gateway calls. A nil *Metrics
// records nothing.
type Metrics struct {
	requestsTotal        *prometheus.CounterVec
	verificationFailures *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

// NewMetrics registers gateway collectors on reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_requests_total",
				Help: "Total number of direct gateway requests by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		verificationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paygate_signature_verification_failures_total",
				Help: "Total number of gateway responses rejected by signature verification",
			},
			[]string{"reason"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paygate_request_duration_seconds",
				Help:    "Direct gateway request time in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) observeRequest(action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requestsTotal.WithLabelValues(action, outcome).Inc()
	m.requestDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

func (m *Metrics) observeVerificationFailure(reason string) {
	if m == nil {
		return
	}

	if reason == "" {
		reason = "other"
	}

	m.verificationFailures.WithLabelValues(reason).Inc()
}
