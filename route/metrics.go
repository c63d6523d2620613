package route

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Check outcomes recorded in the result label.
const (
	resultValid       = "valid"
	resultInvalid     = "invalid"
	resultInvalidJSON = "invalid_json"
)

// Metrics counts request checks per route and part ("query" or "body").
type Metrics struct {
	checks   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the check metrics and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		checks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "objectchecker_route_checks_total",
				Help: "Total number of request checks by route, part and result",
			},
			[]string{"route", "part", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "objectchecker_route_check_duration_seconds",
				Help:    "Duration of request checks",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"route", "part"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.checks, m.duration)
	}
	return m
}

func (m *Metrics) observe(route, part, result string, seconds float64) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(route, part, result).Inc()
	m.duration.WithLabelValues(route, part).Observe(seconds)
}
