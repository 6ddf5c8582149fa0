package elevate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts helper requests by operation and outcome
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the helper metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fileops_helper_requests_total",
				Help: "Elevated file operations handled, by operation and status",
			},
			[]string{"fileop", "status"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fileops_helper_request_duration_seconds",
				Help:    "Time spent executing elevated file operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"fileop"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Duration)
	}
	return m
}

func (m *Metrics) observe(op Operation, status Status, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "unknown"
	switch op {
	case MoveToBin, DeleteItem:
		label = string(op)
	}
	m.Requests.WithLabelValues(label, string(status)).Inc()
	m.Duration.WithLabelValues(label).Observe(elapsed.Seconds())
}
